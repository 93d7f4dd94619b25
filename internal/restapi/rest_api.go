package restapi

import (
	"busboard.cytransit.org/internal/app"
)

type RestAPI struct {
	*app.Application
}

// NewRestAPI creates a new RestAPI instance over the application.
func NewRestAPI(app *app.Application) *RestAPI {
	return &RestAPI{Application: app}
}
