package rest

import (
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/ghodss/yaml"
	"github.com/go-chi/chi/v5"
)

//nolint: funlen
func NewOpenAPI3() openapi3.T {
	swagger := openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "Tasks API",
			Description: "REST APIs used for managing the Tasks of the authenticated user",
			Version:     "0.0.0",
			License: &openapi3.License{
				Name: "MIT",
				URL:  "https://opensource.org/licenses/MIT",
			},
		},
		Servers: openapi3.Servers{
			&openapi3.Server{
				Description: "Local development",
				URL:         "http://127.0.0.1:9234",
			},
		},
	}

	taskSchema := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewInt64Schema()).
		WithProperty("title", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(255)).
		WithProperty("description", openapi3.NewStringSchema()).
		WithProperty("deadline", openapi3.NewDateTimeSchema()).
		WithProperty("priority", openapi3.NewStringSchema().WithEnum("L", "M", "H")).
		WithProperty("completed", openapi3.NewBoolSchema()).
		WithProperty("created_at", openapi3.NewDateTimeSchema()).
		WithProperty("user", openapi3.NewInt64Schema())

	taskRequestSchema := openapi3.NewObjectSchema().
		WithProperty("title", openapi3.NewStringSchema().WithMinLength(1).WithMaxLength(255)).
		WithProperty("description", openapi3.NewStringSchema()).
		WithProperty("deadline", openapi3.NewDateTimeSchema()).
		WithProperty("priority", openapi3.NewStringSchema().WithEnum("L", "M", "H").WithDefault("M")).
		WithProperty("completed", openapi3.NewBoolSchema().WithDefault(false))

	errorSchema := openapi3.NewObjectSchema().
		WithProperty("error", openapi3.NewStringSchema()).
		WithProperty("validations", openapi3.NewObjectSchema().WithAnyAdditionalProperties())

	tokenRequestSchema := openapi3.NewObjectSchema().
		WithProperty("username", openapi3.NewStringSchema()).
		WithProperty("password", openapi3.NewStringSchema())
	tokenRequestSchema.Required = []string{"username", "password"}

	tokenResponseSchema := openapi3.NewObjectSchema().
		WithProperty("access", openapi3.NewStringSchema()).
		WithProperty("refresh", openapi3.NewStringSchema())

	refreshRequestSchema := openapi3.NewObjectSchema().
		WithProperty("refresh", openapi3.NewStringSchema())
	refreshRequestSchema.Required = []string{"refresh"}

	refreshResponseSchema := openapi3.NewObjectSchema().
		WithProperty("access", openapi3.NewStringSchema())

	swagger.Components = openapi3.Components{
		Schemas: openapi3.Schemas{
			"Task":            openapi3.NewSchemaRef("", taskSchema),
			"TaskRequest":     openapi3.NewSchemaRef("", taskRequestSchema),
			"Error":           openapi3.NewSchemaRef("", errorSchema),
			"TokenRequest":    openapi3.NewSchemaRef("", tokenRequestSchema),
			"TokenResponse":   openapi3.NewSchemaRef("", tokenResponseSchema),
			"RefreshRequest":  openapi3.NewSchemaRef("", refreshRequestSchema),
			"RefreshResponse": openapi3.NewSchemaRef("", refreshResponseSchema),
		},
		RequestBodies: openapi3.RequestBodies{
			"TaskRequest": &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithDescription("Request used for creating and updating a task, unknown keys are ignored.").
					WithRequired(true).
					WithJSONSchemaRef(schemaRef("TaskRequest")),
			},
			"TokenRequest": &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithRequired(true).
					WithJSONSchemaRef(schemaRef("TokenRequest")),
			},
			"RefreshRequest": &openapi3.RequestBodyRef{
				Value: openapi3.NewRequestBody().
					WithRequired(true).
					WithJSONSchemaRef(schemaRef("RefreshRequest")),
			},
		},
		Responses: openapi3.Responses{
			"ErrorResponse": &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Response when errors happen.").
					WithJSONSchemaRef(schemaRef("Error")),
			},
			"TaskResponse": &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("A single task.").
					WithJSONSchemaRef(schemaRef("Task")),
			},
			"TasksResponse": &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("The tasks of the authenticated user.").
					WithJSONSchema(openapi3.NewArraySchema().WithItems(taskSchema)),
			},
			"TokenResponse": &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Access and refresh tokens.").
					WithJSONSchemaRef(schemaRef("TokenResponse")),
			},
			"RefreshResponse": &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("New access token.").
					WithJSONSchemaRef(schemaRef("RefreshResponse")),
			},
		},
		SecuritySchemes: openapi3.SecuritySchemes{
			"bearerAuth": &openapi3.SecuritySchemeRef{
				Value: openapi3.NewJWTSecurityScheme(),
			},
		},
	}

	bearer := &openapi3.SecurityRequirements{
		openapi3.NewSecurityRequirement().Authenticate("bearerAuth"),
	}

	idParameter := &openapi3.ParameterRef{
		Value: openapi3.NewPathParameter("id").WithSchema(openapi3.NewInt64Schema()),
	}

	errorResponse := &openapi3.ResponseRef{Ref: "#/components/responses/ErrorResponse"}

	swagger.Paths = openapi3.Paths{
		"/api/token/": &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: "ObtainToken",
				RequestBody: &openapi3.RequestBodyRef{Ref: "#/components/requestBodies/TokenRequest"},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{Ref: "#/components/responses/TokenResponse"},
					"400": errorResponse,
					"401": errorResponse,
				},
			},
		},
		"/api/token/refresh/": &openapi3.PathItem{
			Post: &openapi3.Operation{
				OperationID: "RefreshToken",
				RequestBody: &openapi3.RequestBodyRef{Ref: "#/components/requestBodies/RefreshRequest"},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{Ref: "#/components/responses/RefreshResponse"},
					"400": errorResponse,
					"401": errorResponse,
				},
			},
		},
		"/api/tasks/": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "SearchTasks",
				Security:    bearer,
				Parameters: openapi3.Parameters{
					&openapi3.ParameterRef{
						Value: openapi3.NewQueryParameter("search").
							WithDescription("Case-insensitive substring of title or description").
							WithSchema(openapi3.NewStringSchema()),
					},
					&openapi3.ParameterRef{
						Value: openapi3.NewQueryParameter("ordering").
							WithDescription("Comma separated list of deadline, priority or created_at, prefix with - for descending").
							WithSchema(openapi3.NewStringSchema().WithDefault("-created_at")),
					},
				},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{Ref: "#/components/responses/TasksResponse"},
					"401": errorResponse,
					"500": errorResponse,
				},
			},
			Post: &openapi3.Operation{
				OperationID: "CreateTask",
				Security:    bearer,
				RequestBody: &openapi3.RequestBodyRef{Ref: "#/components/requestBodies/TaskRequest"},
				Responses: openapi3.Responses{
					"201": &openapi3.ResponseRef{Ref: "#/components/responses/TaskResponse"},
					"400": errorResponse,
					"401": errorResponse,
					"500": errorResponse,
				},
			},
		},
		"/api/tasks/{id}/": &openapi3.PathItem{
			Get: &openapi3.Operation{
				OperationID: "ReadTask",
				Security:    bearer,
				Parameters:  openapi3.Parameters{idParameter},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{Ref: "#/components/responses/TaskResponse"},
					"401": errorResponse,
					"404": errorResponse,
					"500": errorResponse,
				},
			},
			Put: &openapi3.Operation{
				OperationID: "UpdateTask",
				Security:    bearer,
				Parameters:  openapi3.Parameters{idParameter},
				RequestBody: &openapi3.RequestBodyRef{Ref: "#/components/requestBodies/TaskRequest"},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{Ref: "#/components/responses/TaskResponse"},
					"400": errorResponse,
					"401": errorResponse,
					"404": errorResponse,
					"500": errorResponse,
				},
			},
			Patch: &openapi3.Operation{
				OperationID: "PartialUpdateTask",
				Security:    bearer,
				Parameters:  openapi3.Parameters{idParameter},
				RequestBody: &openapi3.RequestBodyRef{Ref: "#/components/requestBodies/TaskRequest"},
				Responses: openapi3.Responses{
					"200": &openapi3.ResponseRef{Ref: "#/components/responses/TaskResponse"},
					"400": errorResponse,
					"401": errorResponse,
					"404": errorResponse,
					"500": errorResponse,
				},
			},
			Delete: &openapi3.Operation{
				OperationID: "DeleteTask",
				Security:    bearer,
				Parameters:  openapi3.Parameters{idParameter},
				Responses: openapi3.Responses{
					"204": &openapi3.ResponseRef{Value: openapi3.NewResponse().WithDescription("Task deleted")},
					"401": errorResponse,
					"404": errorResponse,
					"500": errorResponse,
				},
			},
		},
	}

	return swagger
}

func schemaRef(name string) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, nil)
}

// RegisterOpenAPI serves the document as JSON and YAML.
func RegisterOpenAPI(r chi.Router) {
	swagger := NewOpenAPI3()

	r.Get("/openapi3.json", func(w http.ResponseWriter, r *http.Request) {
		renderResponse(w, r, &swagger, http.StatusOK)
	})

	r.Get("/openapi3.yaml", func(w http.ResponseWriter, r *http.Request) {
		data, err := yaml.Marshal(&swagger)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/x-yaml")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	})
}
