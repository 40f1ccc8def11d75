package controllers

import (
	"net/http"

	"barbershop-backend/docs"

	"github.com/gin-gonic/gin"
)

const swaggerPage = `<!doctype html>
<html>
<head>
  <meta charset="utf-8">
  <title>Barbershop API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({ url: "/api-docs/openapi.json", dom_id: "#swagger-ui" });
  </script>
</body>
</html>`

// DocsController serves the OpenAPI document and a Swagger UI page for it.
type DocsController struct {
	spec map[string]interface{}
}

func NewDocsController() (*DocsController, error) {
	spec, err := docs.Spec()
	if err != nil {
		return nil, err
	}
	return &DocsController{spec: spec}, nil
}

func (dc *DocsController) SwaggerUI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerPage))
}

func (dc *DocsController) OpenAPIJSON(c *gin.Context) {
	c.JSON(http.StatusOK, dc.spec)
}

func (dc *DocsController) OpenAPIYAML(c *gin.Context) {
	c.Data(http.StatusOK, "application/yaml", docs.YAML())
}
