// Package classify decides whether a fetched transaction represents a stake
// or transfer to a named counterparty and extracts the signed amount.
package classify

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"

	"github.com/jatin-tres/SUI-Stake-data/internal/sui"
)

// Result is the outcome of classifying one transaction.
type Result struct {
	// Amount in SUI, meaningful only when HasAmount is true. Movements
	// toward the counterparty are negative (the sender's frame): a stake of
	// 5 SUI reports -5.
	Amount    decimal.Decimal
	HasAmount bool
	// Matched is true only when the keyword matched a resolved name.
	// A fallback (blind-mode) amount has HasAmount true but Matched false.
	Matched bool
	Note    string
}

// Classify scans rec for a stake or transfer to a counterparty whose
// resolved name contains keyword (case-insensitive). It is pure: the same
// record, directory and keyword always produce the same Result, and a nil
// or malformed record yields an error note rather than a panic.
func Classify(rec *sui.TransactionBlock, dir *sui.Directory, keyword string) Result {
	if rec == nil {
		return Result{Note: "Network Error"}
	}
	kw := strings.ToLower(strings.TrimSpace(keyword))

	// Pass 1: stake events. Gate on the structural presence of a
	// validator_address field, not on the event type string — the type
	// varies across node versions, the field does not.
	type candidate struct {
		amount decimal.Decimal
		label  string
	}
	var fallback *candidate

	for _, ev := range rec.Events {
		if len(ev.ParsedJSON) == 0 {
			continue
		}
		payload := gjson.ParseBytes(ev.ParsedJSON)
		vaddr := payload.Get("validator_address")
		if !vaddr.Exists() || vaddr.String() == "" {
			continue
		}
		rawAmount := payload.Get("amount")
		if !rawAmount.Exists() {
			continue
		}
		staked, err := sui.MistToSui(rawAmount.String())
		if err != nil {
			continue
		}

		label := resolveLabel(dir, vaddr.String())
		// Staking is an outflow from the sender.
		outflow := staked.Neg()

		if kw != "" && strings.Contains(strings.ToLower(label), kw) {
			return Result{
				Amount:    outflow,
				HasAmount: true,
				Matched:   true,
				Note:      "Staked to " + label,
			}
		}
		// Keep only the first candidate; a later event may still match.
		if fallback == nil {
			fallback = &candidate{amount: outflow, label: label}
		}
	}

	// Pass 2: balance changes. Only address-type owners participate, and
	// only negative deltas: the signed delta is reported exactly as the
	// node states it, so a match here carries the same sign convention as
	// pass 1 (movement toward the counterparty is negative).
	for _, bc := range rec.BalanceChanges {
		if bc.Owner.AddressOwner == "" {
			continue
		}
		amount, err := sui.MistToSui(bc.Amount)
		if err != nil || amount.Sign() >= 0 {
			continue
		}
		name, known := dir.Resolve(bc.Owner.AddressOwner)
		if !known {
			continue
		}
		if kw != "" && strings.Contains(strings.ToLower(name), kw) {
			return Result{
				Amount:    amount,
				HasAmount: true,
				Matched:   true,
				Note:      "Transfer involving " + name,
			}
		}
	}

	// No keyword match, but a stake event was seen: surface it for manual
	// verification instead of hiding it.
	if fallback != nil {
		return Result{
			Amount:    fallback.amount,
			HasAmount: true,
			Note:      fmt.Sprintf("No %q match; first stake event went to %s", keyword, fallback.label),
		}
	}

	return Result{Note: fmt.Sprintf("No event linked to %q", keyword)}
}

// resolveLabel names an address through the directory, falling back to a
// truncated raw address so blind-mode results stay verifiable by hand.
func resolveLabel(dir *sui.Directory, addr string) string {
	if name, ok := dir.Resolve(addr); ok {
		return name
	}
	short := addr
	if len(short) > 6 {
		short = short[:6]
	}
	return "Unknown (" + short + "…)"
}
