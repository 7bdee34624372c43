package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, logrus.TraceLevel, GetLevel("trace"))
	assert.Equal(t, logrus.DebugLevel, GetLevel("DEBUG"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warn"))
	assert.Equal(t, logrus.WarnLevel, GetLevel("warning"))
	assert.Equal(t, logrus.ErrorLevel, GetLevel("error"))
	assert.Equal(t, logrus.FatalLevel, GetLevel("fatal"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("info"))
	assert.Equal(t, logrus.InfoLevel, GetLevel("nonsense"))
	assert.Equal(t, logrus.InfoLevel, GetLevel(""))
}

func TestSetup_File(t *testing.T) {
	prevOut := logrus.StandardLogger().Out
	prevLevel := logrus.GetLevel()
	prevFormatter := logrus.StandardLogger().Formatter
	t.Cleanup(func() {
		logrus.SetOutput(prevOut)
		logrus.SetLevel(prevLevel)
		logrus.SetFormatter(prevFormatter)
	})

	base := filepath.Join(t.TempDir(), "liftlog")
	Setup(Params{Level: "debug", FormatJSON: true, FileName: base})

	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	logrus.WithField("k", "v").Info("hello file")

	data, err := os.ReadFile(base + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello file"`)
	assert.Contains(t, string(data), `"k":"v"`)
}
