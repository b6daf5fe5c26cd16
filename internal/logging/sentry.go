package logging

import (
	"time"

	"github.com/getsentry/sentry-go"
	sentrylogrus "github.com/getsentry/sentry-go/logrus"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
)

// SentrySettings holds what is needed to report errors to Sentry.
type SentrySettings struct {
	DSN         string
	Environment string
	Release     string
}

// InitSentry 初始化 Sentry 客户端并把 error 级别以上的日志转发过去。DSN 为空时不做任何事。
func InitSentry(logger *logrus.Logger, settings SentrySettings) (bool, func(), error) {
	if settings.DSN == "" {
		return false, func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         settings.DSN,
		Environment: settings.Environment,
		Release:     settings.Release,
	})
	if err != nil {
		return false, nil, eris.Wrap(err, "error initializing sentry client")
	}

	hook := sentrylogrus.NewLogHookFromClient([]logrus.Level{
		logrus.ErrorLevel,
		logrus.FatalLevel,
		logrus.PanicLevel,
	}, sentry.CurrentHub().Client())
	if logger != nil {
		logger.AddHook(hook)
	}

	flush := func() {
		sentry.Flush(2 * time.Second)
	}

	return true, flush, nil
}
