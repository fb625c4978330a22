package dashboardserver

import (
	"github.com/gin-gonic/gin"

	apierrors "github.com/Apurer/go-gin-order-dashboard/internal/shared/errors"
)

var responder = apierrors.NewChainedResponder("", apierrors.KindMapper)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	responder.Respond(c, problem)
}

// respondError classifies err by kind and writes the RFC 7807 response.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	responder.RespondError(c, err)
}
