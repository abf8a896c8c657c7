package cli

import "ioc-usage/internal/app"

func newAppService() app.Service {
	return app.NewService()
}
