package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"campus/internal/resolver"
	dErrors "campus/pkg/domain-errors"
	"campus/pkg/platform/httputil"
	"campus/pkg/requestcontext"
)

type learnerListResponse struct {
	Learners []resolver.LearnerDetails `json:"learners"`
	Count    int                       `json:"count"`
}

type subjectListResponse struct {
	Subjects []resolver.SubjectDetails `json:"subjects"`
	Count    int                       `json:"count"`
}

type deleteResponse struct {
	Deleted bool `json:"deleted"`
}

// writeError renders err and logs it. Client errors are logged at warn,
// everything else at error.
func writeError(ctx context.Context, logger *slog.Logger, w http.ResponseWriter, err error) {
	requestID := requestcontext.RequestID(ctx)
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		logger.ErrorContext(ctx, "request failed",
			"error", err,
			"request_id", requestID,
		)
	} else {
		logger.WarnContext(ctx, "request rejected",
			"code", dErrors.CodeOf(err),
			"error", err,
			"request_id", requestID,
		)
	}
	httputil.WriteError(w, err)
}
