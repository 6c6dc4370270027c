package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/rifaisiciliadao/nftree-contracts/internal/usecase"
)

// TransactionRenderer renders the outcome of state-changing commands
type TransactionRenderer struct {
	out io.Writer
}

// NewTransactionRenderer creates a new transaction renderer
func NewTransactionRenderer(out io.Writer) *TransactionRenderer {
	return &TransactionRenderer{out: out}
}

// RenderDeploy renders a contract deployment
func (r *TransactionRenderer) RenderDeploy(result *usecase.DeployContractResult) error {
	if result.Skipped {
		fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%s already deployed at %s", result.ContractName, result.Address.Hex())))
		fmt.Fprintln(r.out, labelStyle.Sprint("   use --redeploy to deploy a new instance"))
		return nil
	}

	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed %s", result.ContractName)))
	kv := newKVTable()
	kv.add("Address", addressStyle.Sprint(result.Address.Hex()))
	kv.add("Record key", result.Key)
	r.addTransaction(kv, result.Transaction)
	kv.render(r.out)
	return nil
}

// RenderToken renders an auxiliary token deployment
func (r *TransactionRenderer) RenderToken(result *usecase.DeployTokenResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Deployed %s token", result.ContractName)))
	kv := newKVTable()
	kv.add("Address", addressStyle.Sprint(result.Address.Hex()))
	kv.add("Record key", result.Symbol)
	r.addTransaction(kv, result.Transaction)
	kv.render(r.out)
	return nil
}

// RenderCampaign renders a published campaign
func (r *TransactionRenderer) RenderCampaign(result *usecase.PublishCampaignResult) error {
	c := result.Campaign
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Published campaign %s", c.ID)))
	kv := newKVTable()
	kv.add("Contract", addressStyle.Sprint(result.Contract.Hex()))
	kv.add("Window", fmt.Sprintf("%s → %s", formatTimestamp(c.StartTimestamp), formatTimestamp(c.EndTimestamp)))
	kv.add("Trees", c.TotalUnits.String())
	kv.add("Beneficiary", addressStyle.Sprint(c.Beneficiary.Hex()))
	kv.add("Token", addressStyle.Sprint(c.ContributeToken.Hex()))
	kv.add("Contribution", c.ContributeAmount.String())
	kv.add("DAO fee", c.FeeAmount.String())
	r.addTransaction(kv, result.Transaction)
	kv.render(r.out)
	return nil
}

// RenderTree renders a tagged tree
func (r *TransactionRenderer) RenderTree(result *usecase.TagTreeResult) error {
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("Tagged tree %s", result.Tree.ID)))
	kv := newKVTable()
	kv.add("Contract", addressStyle.Sprint(result.Contract.Hex()))
	kv.add("Metadata", result.Tree.Metadata)
	r.addTransaction(kv, result.Transaction)
	kv.render(r.out)
	return nil
}

func (r *TransactionRenderer) addTransaction(kv *kvTable, tx *usecase.TransactionResult) {
	if tx == nil {
		return
	}
	kv.add("Network", fmt.Sprintf("%s (%d)", tx.Network, tx.ChainID))
	kv.add("From", addressStyle.Sprint(tx.From.Hex()))
	kv.add("Tx hash", hashStyle.Sprint(tx.Hash.Hex()))
	kv.add("Nonce", strconv.FormatUint(tx.Nonce, 10))
	if tx.Fee != nil {
		kv.add("Gas price", fmt.Sprintf("%s (%s)", FormatGwei(tx.Fee.BoostedFeePerUnit), tx.Fee.Source))
	}
	if tx.Receipt != nil {
		kv.add("Block", strconv.FormatUint(tx.Receipt.BlockNumber, 10))
		kv.add("Gas used", strconv.FormatUint(tx.Receipt.GasUsed, 10))
	}
	if tx.Recovered {
		kv.add("Recovered", warnStyle.Sprint("confirmed from a previous run"))
	}
	if !tx.Persisted {
		kv.add("Record", labelStyle.Sprint("unchanged"))
	}
}
