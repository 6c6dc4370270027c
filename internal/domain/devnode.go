package domain

// DevNode describes a local development node managed by the CLI
type DevNode struct {
	Name    string `json:"name" yaml:"name"`
	Port    string `json:"port" yaml:"port"`
	ChainID uint64 `json:"chainId,omitempty" yaml:"chain_id,omitempty"`
	PidFile string `json:"pidFile" yaml:"pid_file"`
	LogFile string `json:"logFile" yaml:"log_file"`
}

// DevNodeStatus represents the status of a development node
type DevNodeStatus struct {
	Running    bool   `json:"running" yaml:"running"`
	PID        int    `json:"pid,omitempty" yaml:"pid,omitempty"`
	RPCURL     string `json:"rpcUrl,omitempty" yaml:"rpc_url,omitempty"`
	LogFile    string `json:"logFile" yaml:"log_file"`
	RPCHealthy bool   `json:"rpcHealthy" yaml:"rpc_healthy"`
	ChainID    uint64 `json:"chainId,omitempty" yaml:"chain_id,omitempty"`
	Error      string `json:"error,omitempty" yaml:"error,omitempty"`
}

// FundedAccount is the outcome of crediting a synthetic balance on the dev node
type FundedAccount struct {
	Address string `json:"address" yaml:"address"`
	Balance string `json:"balance" yaml:"balance"`
}
