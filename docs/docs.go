// Package docs holds the OpenAPI description of the catalog api served under /docs/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["core"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/books": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "List books",
                "parameters": [
                    {"type": "string", "description": "exact language", "name": "language", "in": "query"},
                    {"type": "string", "description": "exact author id", "name": "authorId", "in": "query"},
                    {"type": "string", "description": "exact publisher id", "name": "publisherId", "in": "query"},
                    {"type": "string", "description": "title substring", "name": "title", "in": "query"},
                    {"type": "string", "description": "free text search", "name": "q", "in": "query"},
                    {"type": "string", "description": "title, copyright or pages. prefix with - for descending", "name": "sort", "in": "query"},
                    {"type": "integer", "description": "page size, 1 to 100", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "records to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Create a book",
                "parameters": [
                    {"description": "book", "name": "book", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.Book"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        },
        "/books/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Get a book",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["books"],
                "summary": "Replace a book",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "book", "name": "book", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.Book"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            },
            "delete": {
                "tags": ["books"],
                "summary": "Delete a book",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        },
        "/authors": {
            "get": {
                "produces": ["application/json"],
                "tags": ["authors"],
                "summary": "List authors",
                "parameters": [
                    {"type": "string", "description": "exact country", "name": "country", "in": "query"},
                    {"type": "string", "description": "name substring", "name": "name", "in": "query"},
                    {"type": "string", "description": "free text search", "name": "q", "in": "query"},
                    {"type": "string", "description": "name or country. prefix with - for descending", "name": "sort", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["authors"],
                "summary": "Create an author",
                "parameters": [
                    {"description": "author", "name": "author", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.Author"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        },
        "/authors/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["authors"],
                "summary": "Get an author",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["authors"],
                "summary": "Replace an author",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "author", "name": "author", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.Author"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            },
            "delete": {
                "tags": ["authors"],
                "summary": "Delete an author",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "409": {"description": "Author still referenced by books", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        },
        "/publishers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["publishers"],
                "summary": "List publishers",
                "parameters": [
                    {"type": "string", "description": "name substring", "name": "name", "in": "query"},
                    {"type": "string", "description": "free text search", "name": "q", "in": "query"},
                    {"type": "string", "description": "name. prefix with - for descending", "name": "sort", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["publishers"],
                "summary": "Create a publisher",
                "parameters": [
                    {"description": "publisher", "name": "publisher", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.Publisher"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        },
        "/publishers/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["publishers"],
                "summary": "Get a publisher",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["publishers"],
                "summary": "Replace a publisher",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"description": "publisher", "name": "publisher", "in": "body", "required": true, "schema": {"$ref": "#/definitions/main.Publisher"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/main.APIResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            },
            "delete": {
                "tags": ["publishers"],
                "summary": "Delete a publisher",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/main.APIError"}},
                    "409": {"description": "Publisher still referenced by books", "schema": {"$ref": "#/definitions/main.APIError"}}
                }
            }
        }
    },
    "definitions": {
        "main.APIError": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "requestid": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "main.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "message": {"type": "string"},
                "requestid": {"type": "string"},
                "status": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "main.Author": {
            "type": "object",
            "properties": {
                "country": {"type": "string"},
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        },
        "main.Book": {
            "type": "object",
            "properties": {
                "authorId": {"type": "string"},
                "copyright": {"type": "integer"},
                "edition": {"type": "string"},
                "id": {"type": "string"},
                "language": {"type": "string", "enum": ["ENGLISH", "SPANISH", "JAPANESE"]},
                "pages": {"type": "integer"},
                "publisherId": {"type": "string"},
                "title": {"type": "string"}
            }
        },
        "main.Publisher": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Catalog API",
	Description:      "Books, authors and publishers catalog backed by JSON collections.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
