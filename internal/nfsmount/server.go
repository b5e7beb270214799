// Package nfsmount exports a billy filesystem over NFSv3 so a generated tree
// can be browsed before it is written anywhere.
package nfsmount

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/exec"
	"runtime"

	billy "github.com/go-git/go-billy/v5"
	nfs "github.com/willscott/go-nfs"
	nfshelper "github.com/willscott/go-nfs/helpers"

	"github.com/HenryVilani/directory-lint/internal/ctxlog"
)

// Server manages the NFS server lifecycle.
type Server struct {
	listener net.Listener
	port     int
	done     chan error
}

// NewServer starts an NFS server on addr (":0" for an ephemeral port) backed
// by the given filesystem.
func NewServer(ctx context.Context, addr string, fs billy.Filesystem) (*Server, error) {
	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("nfs listen: %w", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port

	handler := nfshelper.NewNullAuthHandler(fs)
	cacheHelper := nfshelper.NewCachingHandler(handler, 4096)

	s := &Server{listener: listener, port: port, done: make(chan error, 1)}
	go func() {
		s.done <- nfs.Serve(listener, cacheHelper)
	}()
	ctxlog.FromContext(ctx).Info("nfs server listening", "addr", listener.Addr().String())
	return s, nil
}

// Port returns the TCP port the NFS server is listening on.
func (s *Server) Port() int {
	return s.port
}

// Addr returns the listen address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Close stops the NFS server by closing the listener.
func (s *Server) Close() error {
	return s.listener.Close()
}

// Wait blocks until the server stops. A stop caused by Close is not an error.
func (s *Server) Wait() error {
	err := <-s.done
	if err == nil || errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}

// MountCommand returns the mount invocation for goos. The writable flag
// controls read-only vs read-write.
func MountCommand(goos string, port int, mountpoint string, writable bool) ([]string, error) {
	var opts string
	switch goos {
	case "darwin":
		opts = fmt.Sprintf("port=%d,mountport=%d,vers=3,tcp,locallocks,noresvport", port, port)
		if !writable {
			opts += ",rdonly"
		}
	case "linux":
		opts = fmt.Sprintf("port=%d,mountport=%d,vers=3,tcp,local_lock=all,nolock", port, port)
		if !writable {
			opts += ",ro"
		}
	default:
		return nil, fmt.Errorf("unsupported OS: %s", goos)
	}
	return []string{"sudo", "mount", "-t", "nfs", "-o", opts, "localhost:/", mountpoint}, nil
}

// Mount calls the system mount command to mount the NFS server at mountpoint.
// It requires sudo.
func Mount(ctx context.Context, port int, mountpoint string, writable bool) error {
	args, err := MountCommand(runtime.GOOS, port, mountpoint, writable)
	if err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdin = nil // sudo may need terminal for password
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("mount failed: %w\n%s", err, string(output))
	}
	return nil
}

// Unmount calls the system unmount command on the mountpoint.
func Unmount(ctx context.Context, mountpoint string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		// diskutil needs no sudo for user NFS mounts
		cmd = exec.CommandContext(ctx, "diskutil", "unmount", mountpoint)
		if err := cmd.Run(); err == nil {
			return nil
		}
		cmd = exec.CommandContext(ctx, "sudo", "umount", mountpoint)
	default:
		cmd = exec.CommandContext(ctx, "sudo", "umount", mountpoint)
	}

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("unmount failed: %w\n%s", err, string(output))
	}
	return nil
}
