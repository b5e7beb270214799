package nfsmount

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Lifecycle(t *testing.T) {
	srv, err := NewServer(context.Background(), "127.0.0.1:0", memfs.New())
	require.NoError(t, err)
	assert.NotZero(t, srv.Port())

	conn, err := net.DialTimeout("tcp", srv.Addr().String(), time.Second)
	require.NoError(t, err)
	conn.Close()

	require.NoError(t, srv.Close())
	assert.NoError(t, srv.Wait())
}

func TestMountCommand(t *testing.T) {
	args, err := MountCommand("linux", 2049, "/mnt/x", false)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"sudo", "mount", "-t", "nfs",
		"-o", "port=2049,mountport=2049,vers=3,tcp,local_lock=all,nolock,ro",
		"localhost:/", "/mnt/x",
	}, args)

	args, err = MountCommand("darwin", 1, "/Volumes/x", true)
	require.NoError(t, err)
	assert.Equal(t, "port=1,mountport=1,vers=3,tcp,locallocks,noresvport", args[5])

	_, err = MountCommand("plan9", 1, "/x", true)
	assert.Error(t, err)
}
