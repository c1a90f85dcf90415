// Copyright (c) 2024 The BitFS developers
// Use of this source code is governed by the Open BSV License v5
// that can be found in the LICENSE file.

package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/bitfsorg/libtxbuild-go/address"
	"github.com/bitfsorg/libtxbuild-go/tx"
)

// BuilderOptions validates cfg and translates it into tx builder options.
// A nil logger leaves the builder silent.
func BuilderOptions(cfg Config, logger *zap.Logger) ([]tx.Option, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	opts := []tx.Option{
		tx.WithChangePolicy(tx.ChangePolicy{DustLimit: cfg.DustLimit}),
		tx.WithLogger(logger),
	}
	net, err := resolveNetwork(cfg)
	if err != nil {
		return nil, err
	}
	if net != nil {
		opts = append(opts, tx.WithNetwork(net))
	}
	if cfg.FeeRate > 0 {
		opts = append(opts, tx.WithFeePolicy(tx.FeeRate(cfg.FeeRate)))
	}
	if cfg.RequireScriptPubKey {
		opts = append(opts, tx.WithScriptFallback(tx.RejectUnlabeled))
	}
	return opts, nil
}

// resolveNetwork returns the network the builder is pinned to, or nil
// when any predefined network is accepted.
func resolveNetwork(cfg Config) (*address.Params, error) {
	if cfg.NetworkFile != "" {
		net, err := address.LoadCustomNetwork(cfg.NetworkFile)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidNetwork, err)
		}
		return net, nil
	}
	if cfg.Network == "" {
		return nil, nil
	}
	net, err := address.GetNetwork(cfg.Network)
	if err != nil {
		return nil, ErrInvalidNetwork
	}
	return net, nil
}

// NewBuilder is shorthand for tx.NewBuilder(BuilderOptions(cfg, logger)...).
func NewBuilder(cfg Config, logger *zap.Logger) (*tx.Builder, error) {
	opts, err := BuilderOptions(cfg, logger)
	if err != nil {
		return nil, err
	}
	return tx.NewBuilder(opts...), nil
}
