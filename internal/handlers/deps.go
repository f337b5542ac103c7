package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/debtwise/debtwise-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client
	UserSvc         userService
	ObligationSvc   obligationService
	SummarySvc      summaryService
	StrategySvc     strategyService
	AssistantSvc    assistantService
}
