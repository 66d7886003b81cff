// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init --v3.1 -g cmd/server/main.go
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "servers": [
        {
            "url": "{{.Host}}{{.BasePath}}"
        }
    ],
    "paths": {
        "/health": {
            "get": {
                "operationId": "checkHealth",
                "summary": "Liveness check",
                "tags": [
                    "system"
                ],
                "responses": {
                    "200": {
                        "description": "Database reachable",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.HealthResponse"
                                }
                            }
                        }
                    },
                    "503": {
                        "description": "Database unreachable",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/handler.HealthResponse"
                                }
                            }
                        }
                    }
                }
            }
        },
        "/functions/v1/create-payment-intent": {
            "post": {
                "operationId": "createPaymentIntent",
                "summary": "Start a Stripe card checkout",
                "tags": [
                    "checkout"
                ],
                "responses": {
                    "200": {
                        "description": "Payment intent",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/checkout.PaymentIntentResult"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Missing order_id",
                        "content": {
                            "text/plain": {
                                "schema": {
                                    "type": "string"
                                }
                            }
                        }
                    },
                    "401": {
                        "description": "Missing or invalid token",
                        "content": {
                            "text/plain": {
                                "schema": {
                                    "type": "string"
                                }
                            }
                        }
                    },
                    "403": {
                        "description": "Order belongs to another user",
                        "content": {
                            "text/plain": {
                                "schema": {
                                    "type": "string"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Order not found",
                        "content": {
                            "text/plain": {
                                "schema": {
                                    "type": "string"
                                }
                            }
                        }
                    },
                    "409": {
                        "description": "Order already paid",
                        "content": {
                            "text/plain": {
                                "schema": {
                                    "type": "string"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Provider or configuration failure",
                        "content": {
                            "text/plain": {
                                "schema": {
                                    "type": "string"
                                }
                            }
                        }
                    }
                },
                "description": "Creates or reuses the Stripe payment intent of the caller's order. Errors are plain text.",
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/handler.checkoutBody"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/functions/v1/create-flutterwave-payment": {
            "post": {
                "operationId": "createFlutterwavePayment",
                "summary": "Start a Flutterwave hosted checkout",
                "tags": [
                    "checkout"
                ],
                "responses": {
                    "200": {
                        "description": "Hosted payment link",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/checkout.PaymentLinkResult"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Missing order_id",
                        "content": {
                            "text/plain": {
                                "schema": {
                                    "type": "string"
                                }
                            }
                        }
                    },
                    "401": {
                        "description": "Missing or invalid token",
                        "content": {
                            "text/plain": {
                                "schema": {
                                    "type": "string"
                                }
                            }
                        }
                    },
                    "403": {
                        "description": "Order belongs to another user",
                        "content": {
                            "text/plain": {
                                "schema": {
                                    "type": "string"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Order not found",
                        "content": {
                            "text/plain": {
                                "schema": {
                                    "type": "string"
                                }
                            }
                        }
                    },
                    "409": {
                        "description": "Order already paid",
                        "content": {
                            "text/plain": {
                                "schema": {
                                    "type": "string"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Provider or configuration failure",
                        "content": {
                            "text/plain": {
                                "schema": {
                                    "type": "string"
                                }
                            }
                        }
                    }
                },
                "description": "Returns a Flutterwave payment link for the caller's order. Errors are plain text.",
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/handler.checkoutBody"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/functions/v1/stripe-webhook": {
            "post": {
                "operationId": "stripeWebhook",
                "summary": "Stripe webhook",
                "tags": [
                    "webhooks"
                ],
                "responses": {
                    "200": {
                        "description": "Acknowledged",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/checkout.Ack"
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Bad signature or payload",
                        "content": {
                            "text/plain": {
                                "schema": {
                                    "type": "string"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "Stripe-Signature",
                        "in": "header",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "type": "object"
                            }
                        }
                    }
                }
            }
        },
        "/functions/v1/flutterwave-webhook": {
            "post": {
                "operationId": "flutterwaveWebhook",
                "summary": "Flutterwave webhook",
                "tags": [
                    "webhooks"
                ],
                "responses": {
                    "200": {
                        "description": "Acknowledged",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/checkout.Ack"
                                }
                            }
                        }
                    },
                    "401": {
                        "description": "Bad verif-hash",
                        "content": {
                            "text/plain": {
                                "schema": {
                                    "type": "string"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "verif-hash",
                        "in": "header",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "type": "object"
                            }
                        }
                    }
                }
            }
        },
        "/api/v1/admin/monitoring/snapshot": {
            "get": {
                "operationId": "getMonitoringSnapshot",
                "summary": "Store monitoring snapshot",
                "tags": [
                    "monitoring"
                ],
                "responses": {
                    "200": {
                        "description": "Snapshot",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/monitoring.Snapshot"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    },
                    "403": {
                        "description": "Admin role required",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/deliveries": {
            "get": {
                "operationId": "listDeliveries",
                "summary": "List delivery assignments",
                "tags": [
                    "deliveries"
                ],
                "responses": {
                    "200": {
                        "description": "Assignments, newest first",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "type": "array",
                                                    "items": {
                                                        "$ref": "#/components/schemas/delivery.AssignmentResponse"
                                                    }
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    },
                    "403": {
                        "description": "Admin role required",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/deliveries/{order_id}": {
            "put": {
                "operationId": "assignDriver",
                "summary": "Assign or unassign a driver",
                "tags": [
                    "deliveries"
                ],
                "responses": {
                    "200": {
                        "description": "Assignment",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/delivery.AssignmentResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Validation error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    },
                    "403": {
                        "description": "Admin role required",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    }
                },
                "description": "An empty driver_id unassigns the order.",
                "parameters": [
                    {
                        "name": "order_id",
                        "in": "path",
                        "required": true,
                        "description": "Order ID",
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/delivery.AssignDriverRequest"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/drivers/{driver_id}/location": {
            "get": {
                "operationId": "getDriverLocation",
                "summary": "Latest driver position",
                "tags": [
                    "deliveries"
                ],
                "responses": {
                    "200": {
                        "description": "Position",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/delivery.LocationResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Driver has not reported a location",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "driver_id",
                        "in": "path",
                        "required": true,
                        "description": "Driver ID",
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/products/{product_id}/images/upload-url": {
            "post": {
                "operationId": "requestImageUpload",
                "summary": "Presign a product image upload",
                "tags": [
                    "products"
                ],
                "responses": {
                    "200": {
                        "description": "Upload URL",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/catalog.UploadImageResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Unsupported type or size",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Product not found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    },
                    "503": {
                        "description": "Image storage is not configured",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "product_id",
                        "in": "path",
                        "required": true,
                        "description": "Product ID",
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/catalog.UploadImageRequest"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/products/{product_id}/images": {
            "delete": {
                "operationId": "deleteProductImage",
                "summary": "Delete a product image",
                "tags": [
                    "products"
                ],
                "responses": {
                    "204": {
                        "description": "Deleted"
                    },
                    "400": {
                        "description": "Invalid image path",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    },
                    "503": {
                        "description": "Image storage is not configured",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "product_id",
                        "in": "path",
                        "required": true,
                        "description": "Product ID",
                        "schema": {
                            "type": "string"
                        }
                    },
                    {
                        "name": "path",
                        "in": "query",
                        "required": true,
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/orders/{order_id}/status": {
            "put": {
                "operationId": "updateOrderStatus",
                "summary": "Update order status",
                "tags": [
                    "orders"
                ],
                "responses": {
                    "200": {
                        "description": "New status",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/fulfillment.StatusResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Invalid status",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Order not found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    },
                    "503": {
                        "description": "Order status is not supported by this database",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    }
                },
                "description": "Moves an order through pending, processing, shipped, delivered or cancelled. The payment status is not changed.",
                "parameters": [
                    {
                        "name": "order_id",
                        "in": "path",
                        "required": true,
                        "description": "Order ID",
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/fulfillment.UpdateStatusRequest"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/conversations/{conversation_id}/messages": {
            "post": {
                "operationId": "sendConversationMessage",
                "summary": "Reply to a conversation",
                "tags": [
                    "conversations"
                ],
                "responses": {
                    "200": {
                        "description": "Stored message",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/messaging.MessageResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Empty or too long content",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Conversation not found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "conversation_id",
                        "in": "path",
                        "required": true,
                        "description": "Conversation ID",
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/messaging.SendMessageRequest"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/conversations/{conversation_id}/read": {
            "put": {
                "operationId": "markConversationRead",
                "summary": "Mark customer messages read",
                "tags": [
                    "conversations"
                ],
                "responses": {
                    "200": {
                        "description": "Messages marked read",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/messaging.ReadResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Conversation not found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "conversation_id",
                        "in": "path",
                        "required": true,
                        "description": "Conversation ID",
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/api/v1/admin/conversations/{conversation_id}/status": {
            "put": {
                "operationId": "setConversationStatus",
                "summary": "Change conversation status",
                "tags": [
                    "conversations"
                ],
                "responses": {
                    "200": {
                        "description": "Conversation",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/messaging.ConversationResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "Invalid status",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    },
                    "404": {
                        "description": "Conversation not found",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    }
                },
                "parameters": [
                    {
                        "name": "conversation_id",
                        "in": "path",
                        "required": true,
                        "description": "Conversation ID",
                        "schema": {
                            "type": "string"
                        }
                    }
                ],
                "requestBody": {
                    "required": true,
                    "content": {
                        "application/json": {
                            "schema": {
                                "$ref": "#/components/schemas/messaging.StatusRequest"
                            }
                        }
                    }
                },
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/me": {
            "get": {
                "operationId": "getMe",
                "summary": "Current user",
                "tags": [
                    "storefront"
                ],
                "responses": {
                    "200": {
                        "description": "Caller",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/handler.MeResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    }
                },
                "description": "Returns the id and email of the bearer token's user",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        },
        "/v1/products/top": {
            "get": {
                "operationId": "listTopProducts",
                "summary": "Top rated products",
                "tags": [
                    "storefront"
                ],
                "responses": {
                    "200": {
                        "description": "Products",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/catalog.TopProductsResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "limit must be an integer",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    }
                },
                "description": "Active products by rating, best first. limit is clamped to 1..50.",
                "parameters": [
                    {
                        "name": "limit",
                        "in": "query",
                        "description": "Number of products",
                        "schema": {
                            "type": "integer",
                            "default": 10
                        }
                    }
                ]
            }
        },
        "/v1/recommendations": {
            "get": {
                "operationId": "listRecommendations",
                "summary": "Personalized recommendations",
                "tags": [
                    "storefront"
                ],
                "responses": {
                    "200": {
                        "description": "Recommendations",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "allOf": [
                                        {
                                            "$ref": "#/components/schemas/dto.Response"
                                        },
                                        {
                                            "type": "object",
                                            "properties": {
                                                "data": {
                                                    "$ref": "#/components/schemas/catalog.RecommendationsResponse"
                                                }
                                            }
                                        }
                                    ]
                                }
                            }
                        }
                    },
                    "400": {
                        "description": "limit must be an integer",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    },
                    "500": {
                        "description": "Internal error",
                        "content": {
                            "application/json": {
                                "schema": {
                                    "$ref": "#/components/schemas/dto.Response"
                                }
                            }
                        }
                    }
                },
                "description": "In-stock products the caller has not interacted with, ranked by their category, brand and tag affinity",
                "parameters": [
                    {
                        "name": "limit",
                        "in": "query",
                        "description": "Number of products",
                        "schema": {
                            "type": "integer",
                            "default": 10
                        }
                    }
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ]
            }
        }
    },
    "components": {
        "schemas": {
            "dto.Response": {
                "type": "object",
                "properties": {
                    "success": {
                        "type": "boolean"
                    },
                    "data": {},
                    "error": {
                        "$ref": "#/components/schemas/dto.ErrorInfo"
                    },
                    "meta": {
                        "type": "object",
                        "properties": {
                            "total": {
                                "type": "integer"
                            }
                        }
                    }
                }
            },
            "dto.ErrorInfo": {
                "type": "object",
                "properties": {
                    "code": {
                        "type": "string"
                    },
                    "message": {
                        "type": "string"
                    },
                    "request_id": {
                        "type": "string"
                    },
                    "details": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/dto.ValidationDetail"
                        }
                    }
                }
            },
            "dto.ValidationDetail": {
                "type": "object",
                "properties": {
                    "field": {
                        "type": "string"
                    },
                    "message": {
                        "type": "string"
                    }
                }
            },
            "handler.HealthResponse": {
                "type": "object",
                "properties": {
                    "status": {
                        "type": "string"
                    },
                    "time": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "database": {
                        "type": "string"
                    }
                }
            },
            "handler.checkoutBody": {
                "type": "object",
                "properties": {
                    "order_id": {
                        "type": "string"
                    }
                }
            },
            "handler.MeResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string"
                    },
                    "email": {
                        "type": [
                            "string",
                            "null"
                        ]
                    }
                }
            },
            "checkout.PaymentIntentResult": {
                "type": "object",
                "properties": {
                    "clientSecret": {
                        "type": "string"
                    },
                    "paymentIntentId": {
                        "type": "string"
                    }
                }
            },
            "checkout.PaymentLinkResult": {
                "type": "object",
                "properties": {
                    "link": {
                        "type": "string"
                    }
                }
            },
            "checkout.Ack": {
                "type": "object",
                "properties": {
                    "ok": {
                        "type": "boolean"
                    }
                }
            },
            "monitoring.LowStockProduct": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string"
                    },
                    "name": {
                        "type": "string"
                    },
                    "quantity": {
                        "type": "integer"
                    }
                }
            },
            "monitoring.Snapshot": {
                "type": "object",
                "properties": {
                    "taken_at": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "total_users": {
                        "type": "integer"
                    },
                    "active_users_24h": {
                        "type": "integer"
                    },
                    "orders_today": {
                        "type": "integer"
                    },
                    "revenue_today": {
                        "type": "string"
                    },
                    "payment_statuses": {
                        "type": "object",
                        "additionalProperties": {
                            "type": "integer"
                        }
                    },
                    "low_stock": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/monitoring.LowStockProduct"
                        }
                    },
                    "conversion_rate": {
                        "type": "number"
                    }
                }
            },
            "delivery.AssignDriverRequest": {
                "type": "object",
                "properties": {
                    "driver_id": {
                        "type": "string"
                    }
                }
            },
            "delivery.AssignmentResponse": {
                "type": "object",
                "properties": {
                    "order_id": {
                        "type": "string"
                    },
                    "driver_id": {
                        "type": [
                            "string",
                            "null"
                        ]
                    },
                    "status": {
                        "type": "string"
                    },
                    "assigned_at": {
                        "type": "string",
                        "format": "date-time"
                    }
                }
            },
            "delivery.LocationResponse": {
                "type": "object",
                "properties": {
                    "driver_id": {
                        "type": "string"
                    },
                    "lat": {
                        "type": "number"
                    },
                    "lng": {
                        "type": "number"
                    },
                    "captured_at": {
                        "type": "string",
                        "format": "date-time"
                    }
                }
            },
            "catalog.UploadImageRequest": {
                "type": "object",
                "properties": {
                    "file_name": {
                        "type": "string"
                    },
                    "content_type": {
                        "type": "string"
                    },
                    "size": {
                        "type": "integer"
                    }
                }
            },
            "catalog.UploadImageResponse": {
                "type": "object",
                "properties": {
                    "upload_url": {
                        "type": "string"
                    },
                    "path": {
                        "type": "string"
                    },
                    "public_url": {
                        "type": "string"
                    },
                    "expires_at": {
                        "type": "string",
                        "format": "date-time"
                    }
                }
            },
            "catalog.TopProductResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string"
                    },
                    "name": {
                        "type": "string"
                    },
                    "price": {
                        "type": "number"
                    },
                    "rating": {
                        "type": "number"
                    },
                    "reviews_count": {
                        "type": "integer"
                    },
                    "main_image": {
                        "type": [
                            "string",
                            "null"
                        ]
                    },
                    "category_id": {
                        "type": [
                            "string",
                            "null"
                        ]
                    }
                }
            },
            "catalog.TopProductsResponse": {
                "type": "object",
                "properties": {
                    "items": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/catalog.TopProductResponse"
                        }
                    }
                }
            },
            "catalog.ProductResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string"
                    },
                    "name": {
                        "type": "string"
                    },
                    "slug": {
                        "type": [
                            "string",
                            "null"
                        ]
                    },
                    "description": {
                        "type": [
                            "string",
                            "null"
                        ]
                    },
                    "price": {
                        "type": "number"
                    },
                    "compareAtPrice": {
                        "type": [
                            "number",
                            "null"
                        ]
                    },
                    "sku": {
                        "type": [
                            "string",
                            "null"
                        ]
                    },
                    "quantity": {
                        "type": "integer"
                    },
                    "trackQuantity": {
                        "type": "boolean"
                    },
                    "categoryId": {
                        "type": [
                            "string",
                            "null"
                        ]
                    },
                    "brand": {
                        "type": [
                            "string",
                            "null"
                        ]
                    },
                    "mainImage": {
                        "type": [
                            "string",
                            "null"
                        ]
                    },
                    "images": {
                        "type": "array",
                        "items": {
                            "type": "string"
                        }
                    },
                    "specifications": {
                        "type": "object"
                    },
                    "tags": {
                        "type": "array",
                        "items": {
                            "type": "string"
                        }
                    },
                    "rating": {
                        "type": "number"
                    },
                    "reviewsCount": {
                        "type": "integer"
                    },
                    "isFeatured": {
                        "type": "boolean"
                    },
                    "isActive": {
                        "type": "boolean"
                    },
                    "createdAt": {
                        "type": [
                            "string",
                            "null"
                        ],
                        "format": "date-time"
                    },
                    "updatedAt": {
                        "type": [
                            "string",
                            "null"
                        ],
                        "format": "date-time"
                    }
                }
            },
            "catalog.RecommendationMeta": {
                "type": "object",
                "properties": {
                    "algorithm": {
                        "type": "string"
                    },
                    "source": {
                        "type": "string"
                    },
                    "request_id": {
                        "type": "string"
                    },
                    "generated_at": {
                        "type": "string",
                        "format": "date-time"
                    },
                    "top_categories": {
                        "type": "array",
                        "items": {
                            "type": "string"
                        }
                    },
                    "top_brands": {
                        "type": "array",
                        "items": {
                            "type": "string"
                        }
                    },
                    "top_tags": {
                        "type": "array",
                        "items": {
                            "type": "string"
                        }
                    },
                    "seen_count": {
                        "type": "integer"
                    },
                    "cooccurrence_seed_count": {
                        "type": "integer"
                    },
                    "cooccurrence_scored_count": {
                        "type": "integer"
                    }
                }
            },
            "catalog.RecommendationsResponse": {
                "type": "object",
                "properties": {
                    "user_id": {
                        "type": "string"
                    },
                    "items": {
                        "type": "array",
                        "items": {
                            "$ref": "#/components/schemas/catalog.ProductResponse"
                        }
                    },
                    "meta": {
                        "$ref": "#/components/schemas/catalog.RecommendationMeta"
                    }
                }
            },
            "fulfillment.UpdateStatusRequest": {
                "type": "object",
                "properties": {
                    "status": {
                        "type": "string",
                        "enum": [
                            "pending",
                            "processing",
                            "shipped",
                            "delivered",
                            "cancelled"
                        ]
                    }
                },
                "required": [
                    "status"
                ]
            },
            "fulfillment.StatusResponse": {
                "type": "object",
                "properties": {
                    "order_id": {
                        "type": "string"
                    },
                    "status": {
                        "type": "string"
                    },
                    "updated_at": {
                        "type": "string",
                        "format": "date-time"
                    }
                }
            },
            "messaging.SendMessageRequest": {
                "type": "object",
                "properties": {
                    "content": {
                        "type": "string",
                        "maxLength": 4000
                    }
                },
                "required": [
                    "content"
                ]
            },
            "messaging.StatusRequest": {
                "type": "object",
                "properties": {
                    "status": {
                        "type": "string",
                        "enum": [
                            "active",
                            "pending",
                            "resolved"
                        ]
                    }
                },
                "required": [
                    "status"
                ]
            },
            "messaging.MessageResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string"
                    },
                    "conversation_id": {
                        "type": "string"
                    },
                    "sender_id": {
                        "type": "string"
                    },
                    "sender_type": {
                        "type": "string"
                    },
                    "content": {
                        "type": "string"
                    },
                    "message_type": {
                        "type": "string"
                    },
                    "is_read": {
                        "type": "boolean"
                    },
                    "created_at": {
                        "type": "string",
                        "format": "date-time"
                    }
                }
            },
            "messaging.ReadResponse": {
                "type": "object",
                "properties": {
                    "conversation_id": {
                        "type": "string"
                    },
                    "updated": {
                        "type": "integer"
                    }
                }
            },
            "messaging.ConversationResponse": {
                "type": "object",
                "properties": {
                    "id": {
                        "type": "string"
                    },
                    "status": {
                        "type": "string"
                    }
                }
            }
        },
        "securitySchemes": {
            "BearerAuth": {
                "type": "apiKey",
                "in": "header",
                "name": "Authorization",
                "description": "Bearer token authentication. Format: \"Bearer {token}\""
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
	Title:            "GBA Backend API",
	Description:      "Payment functions, admin API and storefront API of the GBA store",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
