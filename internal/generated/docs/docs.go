// Package docs registers the dispatch API document with swag so the swagger
// UI can serve it. Import it for its side effect.
package docs

import (
	"encoding/json"

	"dispatch/internal/generated/servers"

	"github.com/swaggo/swag"
)

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Title:            "Dispatch",
	Description:      "Courier order assignment and settlement.",
	InfoInstanceName: "swagger",
	// The document is plain JSON; these delimiters never occur in it.
	LeftDelim:  "{%",
	RightDelim: "%}",
}

func init() {
	SwaggerInfo.SwaggerTemplate = render()
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

func render() string {
	doc, err := servers.GetSwagger()
	if err != nil {
		return "{}"
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "{}"
	}
	return string(raw)
}
