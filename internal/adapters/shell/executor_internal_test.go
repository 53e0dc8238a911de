package shell

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		sysEnv   []string
		toolEnv  map[string]string
		expected []string
	}{
		{
			name:     "System Only (Allowed)",
			sysEnv:   []string{"USER=test", "PATH=/bin", "JAVA_HOME=/jdk"},
			expected: []string{"USER=test", "PATH=/bin", "JAVA_HOME=/jdk"},
		},
		{
			name:     "System Only (Filtered)",
			sysEnv:   []string{"USER=test", "SSH_AUTH_SOCK=/tmp/ssh", "SECRET=key"},
			expected: []string{"USER=test"},
		},
		{
			name:     "Tool Override",
			sysEnv:   []string{"USER=test", "PATH=/bin"},
			toolEnv:  map[string]string{"PATH": "/opt/maven/bin", "MAVEN_OPTS": "-Xmx1g"},
			expected: []string{"USER=test", "PATH=/opt/maven/bin", "MAVEN_OPTS=-Xmx1g"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveEnvironment(tt.sysEnv, tt.toolEnv)
			sort.Strings(got)
			sort.Strings(tt.expected)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestLogWriter(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	gomock.InOrder(
		logger.EXPECT().Info("part1part2"),
		logger.EXPECT().Info("tail"),
	)

	w := &logWriter{logger: logger}
	_, _ = w.Write([]byte("part1"))
	_, _ = w.Write([]byte("part2\r\ntail"))
	assert.NoError(t, w.Close())
}

func TestTailWriter(t *testing.T) {
	w := &tailWriter{}
	_, _ = w.Write([]byte("first\n\n  second  \n"))
	assert.Equal(t, "second", w.Last())

	_, _ = w.Write([]byte("unterminated"))
	assert.Equal(t, "unterminated", w.Last())
}
