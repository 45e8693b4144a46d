package logging

import "go.uber.org/zap"

// CronAdapter exposes a zap logger through the robfig/cron Logger interface.
type CronAdapter struct{ *zap.SugaredLogger }

// NewCronAdapter wraps logger for use with cron.WithLogger and cron.Recover.
func NewCronAdapter(logger *zap.Logger) *CronAdapter {
	return &CronAdapter{logger.Sugar()}
}

func (c *CronAdapter) Info(msg string, keysAndValues ...interface{}) {
	c.Debugw(msg, keysAndValues...)
}

func (c *CronAdapter) Error(err error, msg string, keysAndValues ...interface{}) {
	c.Errorw(msg, append(keysAndValues, "error", err)...)
}
