package docs

import "github.com/swaggo/swag"

// @title           Taskboard API
// @version         1.0
// @description     API for managing a personal Kanban board: one board per user, with ordered columns and tickets.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description User registration, login and profile

// @tag.name Boards
// @tag.description Board management operations

// @tag.name Columns
// @tag.description Column management and reordering

// @tag.name Tickets
// @tag.description Ticket management, reordering and cross-column moves

// Register swagger info
func SwaggerInfo() *swag.Spec {
	spec, _ := swag.GetSwagger(swag.Name).(*swag.Spec)
	return spec
}
