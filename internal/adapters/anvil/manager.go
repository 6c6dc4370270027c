package anvil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/rifaisiciliadao/nftree-contracts/internal/domain"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

const (
	DefaultNodeName = "anvil"
	DefaultNodePort = "8545"
	DefaultChainID  = 31337

	startupTimeout = 10 * time.Second
	stopTimeout    = 5 * time.Second
)

// Manager starts and stops anvil processes tracked by pid files
type Manager struct {
	binary string
	tmpDir string
	log    *slog.Logger
}

// NewManager creates a new anvil manager
func NewManager(log *slog.Logger) *Manager {
	return &Manager{binary: "anvil", tmpDir: os.TempDir(), log: log}
}

// setFilePaths fills in defaults and the pid/log file locations
func (m *Manager) setFilePaths(node *domain.DevNode) {
	if strings.TrimSpace(node.Name) == "" {
		node.Name = DefaultNodeName
	}
	if strings.TrimSpace(node.Port) == "" {
		node.Port = DefaultNodePort
	}
	if node.PidFile == "" {
		node.PidFile = filepath.Join(m.tmpDir, fmt.Sprintf("nftree-%s.pid", node.Name))
	}
	if node.LogFile == "" {
		node.LogFile = filepath.Join(m.tmpDir, fmt.Sprintf("nftree-%s.log", node.Name))
	}
}

// buildAnvilArgs returns the command line for node
func buildAnvilArgs(node *domain.DevNode) []string {
	args := []string{"--port", node.Port, "--host", "0.0.0.0"}
	if node.ChainID != 0 {
		args = append(args, "--chain-id", strconv.FormatUint(node.ChainID, 10))
	}
	return args
}

func rpcURL(node *domain.DevNode) string {
	return "http://localhost:" + node.Port
}

// Start launches anvil in the background and waits until its RPC answers
func (m *Manager) Start(ctx context.Context, node *domain.DevNode) error {
	m.setFilePaths(node)
	if pid, running := isRunning(node); running {
		return fmt.Errorf("node '%s' is already running (PID %d)", node.Name, pid)
	}

	logFile, err := os.Create(node.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}
	defer logFile.Close()

	cmd := exec.Command(m.binary, buildAnvilArgs(node)...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s (is foundry installed?): %w", m.binary, err)
	}

	if err := os.WriteFile(node.PidFile, []byte(strconv.Itoa(cmd.Process.Pid)), 0644); err != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	_ = cmd.Process.Release()

	m.log.Debug("node started", "name", node.Name, "pid", cmd.Process.Pid, "port", node.Port)

	waitCtx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()
	for {
		if _, err := chainID(waitCtx, rpcURL(node)); err == nil {
			return nil
		}
		select {
		case <-waitCtx.Done():
			return fmt.Errorf("node '%s' did not answer on %s, see %s", node.Name, rpcURL(node), node.LogFile)
		case <-time.After(200 * time.Millisecond):
		}
	}
}

// Stop terminates the node and removes its pid file
func (m *Manager) Stop(_ context.Context, node *domain.DevNode) error {
	m.setFilePaths(node)
	pid, running := isRunning(node)
	if !running {
		_ = os.Remove(node.PidFile)
		return fmt.Errorf("node '%s' is not running", node.Name)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("failed to find process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		if err := process.Kill(); err != nil {
			return fmt.Errorf("failed to kill process: %w", err)
		}
	}

	// Wait for process to actually exit (with timeout)
	deadline := time.Now().Add(stopTimeout)
	for time.Now().Before(deadline) {
		if process.Signal(syscall.Signal(0)) != nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if process.Signal(syscall.Signal(0)) == nil {
		_ = process.Kill()
	}

	if err := os.Remove(node.PidFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// GetStatus reports whether the node process is alive and its RPC responds
func (m *Manager) GetStatus(ctx context.Context, node *domain.DevNode) (*domain.DevNodeStatus, error) {
	m.setFilePaths(node)
	status := &domain.DevNodeStatus{LogFile: node.LogFile}

	pid, running := isRunning(node)
	if !running {
		return status, nil
	}
	status.Running = true
	status.PID = pid
	status.RPCURL = rpcURL(node)

	id, err := chainID(ctx, status.RPCURL)
	if err != nil {
		status.Error = err.Error()
		return status, nil
	}
	status.RPCHealthy = true
	status.ChainID = id
	return status, nil
}

// StreamLogs copies the node log to writer and follows it until ctx is done
func (m *Manager) StreamLogs(ctx context.Context, node *domain.DevNode, writer io.Writer) error {
	m.setFilePaths(node)
	f, err := os.Open(node.LogFile)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("log file does not exist: %s", node.LogFile)
		}
		return err
	}
	defer f.Close()

	for {
		if _, err := io.Copy(writer, f); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(250 * time.Millisecond):
		}
	}
}

// isRunning checks the pid file and whether that process is alive
func isRunning(node *domain.DevNode) (int, bool) {
	data, err := os.ReadFile(node.PidFile)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, false
	}
	process, err := os.FindProcess(pid)
	if err != nil {
		return 0, false
	}
	if err := process.Signal(syscall.Signal(0)); err != nil {
		return 0, false
	}
	return pid, true
}

// chainID asks an endpoint for its chain id
func chainID(ctx context.Context, endpoint string) (uint64, error) {
	client, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return 0, err
	}
	defer client.Close()

	var result hexutil.Uint64
	if err := client.CallContext(ctx, &result, "eth_chainId"); err != nil {
		return 0, err
	}
	if result == 0 {
		return 0, errors.New("endpoint reported chain id 0")
	}
	return uint64(result), nil
}

// Ensure Manager implements DevNodeManager
var _ usecase.DevNodeManager = (*Manager)(nil)
