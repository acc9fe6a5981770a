// Package platform reports the host platform release level and instruction set.
package platform

import (
	"context"
	"io"
	"strconv"
	"strings"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	getprop       = "getprop"
	propSDKInt    = "ro.build.version.sdk"
	propCPUABI    = "ro.product.cpu.abi"
	maxPropLength = 4096
)

var (
	_ ports.VersionProbe           = (*Probe)(nil)
	_ ports.InstructionSetProvider = (*Probe)(nil)
)

// Probe reads system properties, preferring configured overrides.
type Probe struct {
	runner      ports.ProcessRunner
	sdkOverride int
	isaOverride string
}

// NewProbe creates a Probe. A zero sdkOverride and an empty isaOverride mean "detect".
func NewProbe(runner ports.ProcessRunner, sdkOverride int, isaOverride string) *Probe {
	return &Probe{
		runner:      runner,
		sdkOverride: sdkOverride,
		isaOverride: isaOverride,
	}
}

// SDKVersion returns the platform release level.
func (p *Probe) SDKVersion(ctx context.Context) (int, error) {
	if p.sdkOverride > 0 {
		return p.sdkOverride, nil
	}

	value, err := p.property(ctx, propSDKInt)
	if err != nil {
		return 0, zerr.Wrap(err, domain.ErrVersionProbeFailed.Error())
	}

	sdk, err := strconv.Atoi(value)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, domain.ErrVersionProbeFailed.Error()), "value", value)
	}
	return sdk, nil
}

// CurrentInstructionSet returns the instruction set artifacts target.
// It falls back to domain.DefaultInstructionSet when the ABI is unknown or unreadable.
func (p *Probe) CurrentInstructionSet(ctx context.Context) (string, error) {
	if p.isaOverride != "" {
		return p.isaOverride, nil
	}

	abi, err := p.property(ctx, propCPUABI)
	if err != nil {
		return domain.DefaultInstructionSet, nil //nolint:nilerr // the default instruction set is the documented fallback
	}
	if isa, ok := domain.InstructionSetForABI(abi); ok {
		return isa, nil
	}
	return domain.DefaultInstructionSet, nil
}

func (p *Probe) property(ctx context.Context, name string) (string, error) {
	proc, err := p.runner.Start(ctx, []string{getprop, name}, nil)
	if err != nil {
		return "", err
	}

	out := proc.Output()
	errOut := proc.ErrorOutput()
	defer func() {
		_ = out.Close()
		_ = errOut.Close()
	}()

	data, readErr := io.ReadAll(io.LimitReader(out, maxPropLength))
	code, err := proc.Wait()
	if err != nil {
		return "", err
	}
	if readErr != nil {
		return "", zerr.Wrap(readErr, "failed to read property")
	}
	if code != 0 {
		return "", zerr.With(zerr.New("getprop failed"), "exit_code", code)
	}

	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", zerr.With(zerr.New("property is not set"), "property", name)
	}
	return value, nil
}
