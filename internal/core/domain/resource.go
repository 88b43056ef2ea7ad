package domain

import "math/big"

// Resource is one consumable per-account allowance with a limit and the
// portion already used in the current window.
type Resource struct {
	Limit int64
	Used  int64
}

// Available returns the unused allowance, floored at zero.
func (r Resource) Available() int64 {
	if avail := r.Limit - r.Used; avail > 0 {
		return avail
	}
	return 0
}

// ResourceQuota is an account's current resource state: energy for contract
// execution plus bandwidth split into the free daily allotment and the
// staked allotment.
type ResourceQuota struct {
	Energy          Resource
	FreeBandwidth   Resource
	StakedBandwidth Resource
}

// BandwidthAvailable is the total bandwidth still usable without burning coin.
func (q ResourceQuota) BandwidthAvailable() int64 {
	return q.FreeBandwidth.Available() + q.StakedBandwidth.Available()
}

// FeeEstimate is the outcome of shortfall-based fee sizing. Shortfalls are
// never negative; excess allowance never produces a credit.
type FeeEstimate struct {
	EnergyShortfall    int64
	BandwidthShortfall int64
	FeeSun             *big.Int
	Fee                string // display units, truncated to the chain's fee precision
}

// IsFree reports whether the account's allowances fully cover the transfer.
func (f FeeEstimate) IsFree() bool {
	return f.FeeSun == nil || f.FeeSun.Sign() == 0
}
