package docs

// @title Cardio Recommendation API
// @version 1.0
// @description Maps a physiological risk profile to ranked supplement recommendations from a curated knowledge base
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /
// @schemes http https
