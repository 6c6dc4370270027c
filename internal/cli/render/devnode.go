package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

// DevNodeRenderer renders dev node operation results
type DevNodeRenderer struct {
	out io.Writer
}

// NewDevNodeRenderer creates a new dev node renderer
func NewDevNodeRenderer(out io.Writer) *DevNodeRenderer {
	return &DevNodeRenderer{out: out}
}

// Render renders the dev node operation result
func (r *DevNodeRenderer) Render(result *usecase.ManageDevNodeResult) error {
	switch result.Operation {
	case usecase.DevNodeStart, usecase.DevNodeRestart:
		return r.renderStart(result)
	case usecase.DevNodeStop:
		fmt.Fprintln(r.out, FormatSuccess(result.Message))
		return nil
	case usecase.DevNodeStatus:
		return r.renderStatus(result)
	case usecase.DevNodeFund:
		return r.renderFund(result)
	case usecase.DevNodeLogs:
		return nil
	default:
		return fmt.Errorf("unknown operation: %s", result.Operation)
	}
}

func (r *DevNodeRenderer) renderStart(result *usecase.ManageDevNodeResult) error {
	fmt.Fprintln(r.out, FormatSuccess(result.Message))
	if result.Status != nil {
		color.New(color.FgYellow).Fprintf(r.out, "📋 Logs: %s\n", result.Status.LogFile)
		color.New(color.FgBlue).Fprintf(r.out, "🌐 RPC URL: %s\n", result.Status.RPCURL)
	}
	return nil
}

func (r *DevNodeRenderer) renderStatus(result *usecase.ManageDevNodeResult) error {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "📊 Dev node status ('%s'):\n", result.Node.Name)

	status := result.Status
	if status == nil || !status.Running {
		errStyle.Fprintln(r.out, "Status: 🔴 Not running")
		labelStyle.Fprintf(r.out, "PID file: %s\n", result.Node.PidFile)
		labelStyle.Fprintf(r.out, "Log file: %s\n", result.Node.LogFile)
		return nil
	}

	okStyle.Fprintf(r.out, "Status: 🟢 Running (PID %d)\n", status.PID)
	color.New(color.FgBlue).Fprintf(r.out, "RPC URL: %s\n", status.RPCURL)
	warnStyle.Fprintf(r.out, "Log file: %s\n", status.LogFile)
	if status.RPCHealthy {
		okStyle.Fprintf(r.out, "RPC Health: ✅ Responding (chain %d)\n", status.ChainID)
	} else {
		errStyle.Fprintln(r.out, "RPC Health: ❌ Not responding")
	}
	return nil
}

func (r *DevNodeRenderer) renderFund(result *usecase.ManageDevNodeResult) error {
	fmt.Fprintln(r.out, FormatSuccess(result.Message))
	for _, account := range result.Funded {
		fmt.Fprintf(r.out, "  %s  %s wei\n", addressStyle.Sprint(account.Address), account.Balance)
	}
	return nil
}

// RenderLogsHeader renders the header for logs streaming
func (r *DevNodeRenderer) RenderLogsHeader(node string, logFile string) {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "📋 Showing dev node '%s' logs (Ctrl+C to exit):\n", node)
	labelStyle.Fprintf(r.out, "Log file: %s\n\n", logFile)
}
