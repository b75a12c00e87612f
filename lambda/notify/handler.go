package main

import (
	"context"

	"github.com/aws/aws-xray-sdk-go/xray"
	"golang.org/x/exp/slog"

	"github.com/opentofu/cluster-notifier/internal/config"
	"github.com/opentofu/cluster-notifier/internal/notify"
)

type LambdaFunc func(ctx context.Context, e notify.Event) error

func HandleRequest(config *config.Config) LambdaFunc {
	handler := config.Handler()

	return func(ctx context.Context, e notify.Event) error {
		resolved := e.Attributes.Resolve()
		slog.Info("Handling cluster notification", "cluster", resolved.ClusterName, "project", resolved.ProjectID)

		return xray.Capture(ctx, "notify.handle", func(tracedCtx context.Context) error {
			xray.AddAnnotation(tracedCtx, "cluster", resolved.ClusterName)
			xray.AddAnnotation(tracedCtx, "project", resolved.ProjectID)
			xray.AddAnnotation(tracedCtx, "type", resolved.ShortTypeName())

			return handler.Handle(tracedCtx, e)
		})
	}
}
