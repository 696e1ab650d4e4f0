package common

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
)

var (
	ProjectID string

	GAEService string

	GAEVersion string

	Env string

	// Production flag indicating if app is running the production backend on appengine
	Production bool

	// IsLocalhost flag indicating if app is running on localhost
	IsLocalhost bool
)

const (
	productionProject = "referralhub-casemgmt"

	TestProjectID = "referralhub-casemgmt-dev"
)

// Firestore query operators
const (
	ArrayContains = "array-contains"
)

func initEnvVariables() {
	ProjectID = GetEnv("GOOGLE_CLOUD_PROJECT", "")

	IsLocalhost = gin.Mode() != gin.ReleaseMode
	GAEService = GetEnv("GAE_SERVICE", "scheduled-tasks")
	GAEVersion = GetEnv("GAE_VERSION", "localhost")

	if value := os.Getenv("FIRESTORE_EMULATOR_HOST"); value != "" {
		log.Printf("Using Firestore Emulator: %s", value)
	}

	switch {
	case ProjectID == productionProject && !IsLocalhost:
		Env = "production"
		Production = true
	default:
		Env = "development"
		Production = false
	}
}

func init() {
	initEnvVariables()
}

func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}
