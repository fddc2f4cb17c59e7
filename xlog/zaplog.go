package xlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig describes a rotating JSON log file.
type FileConfig struct {
	Filename   string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	QueueSize  int
	Level      zapcore.Level
}

func (c *FileConfig) setDefaults() {
	if c.MaxSize <= 0 {
		c.MaxSize = 64
	}
	if c.MaxBackups <= 0 {
		c.MaxBackups = 2
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 14
	}
	if c.QueueSize <= 0 {
		c.QueueSize = 1024
	}
}

// NewZapLogger builds a JSON logger writing through a rotating file. The
// returned close func flushes and closes the file.
func NewZapLogger(cfg FileConfig) (*zap.Logger, func() error) {
	cfg.setDefaults()
	hook := &lumberjack.Logger{
		Filename:   cfg.Filename,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
	}
	w := newAsyncWriter(hook, cfg.QueueSize)
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "@timestamp",
		LevelKey:       "loglevel",
		MessageKey:     "msg",
		CallerKey:      "caller",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(cfg.Level),
	)
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
	return l, func() error {
		_ = l.Sync()
		return w.Close()
	}
}
