// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/ava-labs/avalanchego/api/metrics"
	"github.com/ava-labs/avalanchego/utils/logging"

	"github.com/ava-labs/changeback/pebble"
	"github.com/ava-labs/changeback/utils"
)

// New opens the pebble database of [namespace] below [dataDir] and registers
// its metrics with [gatherer].
func New(
	cfg pebble.Config,
	dataDir string,
	namespace string,
	gatherer metrics.MultiGatherer,
	log logging.Logger,
) (*pebble.Database, error) {
	path, err := utils.InitSubDirectory(dataDir, namespace)
	if err != nil {
		return nil, err
	}

	db, registry, err := pebble.New(path, cfg, log)
	if err != nil {
		return nil, err
	}

	if err := gatherer.Register(namespace, registry); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
