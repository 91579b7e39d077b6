package services

import (
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindAvailablePort(t *testing.T) {
	port, err := FindAvailablePort(18700, 18799)

	require.NoError(t, err)
	assert.GreaterOrEqual(t, port, 18700)
	assert.LessOrEqual(t, port, 18799)
}

func TestFindAvailablePort_SkipsBusyPort(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	busy := listener.Addr().(*net.TCPAddr).Port

	_, err = FindAvailablePort(busy, busy)

	require.Error(t, err)
	assert.Contains(t, err.Error(), fmt.Sprintf("%d-%d", busy, busy))
}
