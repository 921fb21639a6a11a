// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pubsub

import "encoding/json"

// Receipt is published for every successful state-changing call. Receipts are
// published in height order.
type Receipt struct {
	Contract string   `json:"contract"`
	Actor    string   `json:"actor,omitempty"`
	Method   string   `json:"method"`
	Value    int32    `json:"value"`
	Logs     []string `json:"logs"`
	Height   uint64   `json:"height"`
}

func (r *Receipt) Marshal() ([]byte, error) {
	return json.Marshal(r)
}

func UnmarshalReceipt(b []byte) (*Receipt, error) {
	var r Receipt
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
