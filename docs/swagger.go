package docs

// @title           Tripdash API
// @version         1.0
// @description     Trip analytics dashboard over the Uber trips dataset. Serves filtered summary metrics, chart series, CSV export and a live WebSocket snapshot feed behind a shared-secret access gate.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT session token.
