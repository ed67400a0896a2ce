// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package upload

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jeranaias/indus-tui/internal/util"
)

// DegradedFragment is injected when any upload fails. The send proceeds
// without file context; partial listings are never produced.
const DegradedFragment = "Note: the user's file upload failed. Answer the question without the uploaded file context."

// Orchestrator fans payloads out to the uploader and folds the results into
// one context fragment.
type Orchestrator struct {
	uploader Uploader
}

// NewOrchestrator creates an orchestrator around the given uploader.
func NewOrchestrator(uploader Uploader) *Orchestrator {
	return &Orchestrator{uploader: uploader}
}

// BuildFragment uploads all payloads concurrently and returns the context
// fragment for the model request. Zero payloads return an empty fragment
// with no calls made. All-or-nothing: if any upload fails the individual
// results are discarded and the degraded fragment is returned instead.
func (o *Orchestrator) BuildFragment(ctx context.Context, payloads []Payload) string {
	if len(payloads) == 0 {
		return ""
	}

	descriptors := make([]*Descriptor, len(payloads))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range payloads {
		g.Go(func() error {
			desc, err := o.uploader.Upload(ctx, p)
			if err != nil {
				return err
			}
			descriptors[i] = desc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return DegradedFragment
	}

	var sb strings.Builder
	sb.WriteString("The user uploaded the following files:\n")
	for _, desc := range descriptors {
		sb.WriteString("- ")
		sb.WriteString(desc.Filename)
		sb.WriteString(" (")
		sb.WriteString(util.BytesToMB(desc.Size))
		sb.WriteString(" MB)\n")
	}
	sb.WriteString("Take these files into account when answering.")
	return sb.String()
}
