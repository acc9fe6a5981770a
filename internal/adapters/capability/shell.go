// Package capability provides the platform capability providers and the shell
// command transaction they use to reach the package service.
package capability

import (
	"context"

	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/parcel"
	"go.trai.ch/dexopt/internal/core/ports"
	"go.trai.ch/zerr"
)

// Standard stream descriptors handed to the remote shell.
const (
	stdinFD  = 0
	stdoutFD = 1
	stderrFD = 2
)

// resultReceiverHandle identifies the caller-side result receiver. The reply carries
// the result directly, so the handle only has to be present.
const resultReceiverHandle int64 = 1

// ShellCommand runs args inside the service behind raw as one synchronous transaction
// and returns the captured command output.
func ShellCommand(ctx context.Context, raw ports.Binder, args []string) (string, error) {
	data := parcel.Obtain()
	reply := parcel.Obtain()
	defer data.Recycle()
	defer reply.Recycle()

	data.WriteFileDescriptor(stdinFD)
	data.WriteFileDescriptor(stdoutFD)
	data.WriteFileDescriptor(stderrFD)
	data.WriteStringArray(args)
	// Shell callback.
	data.WriteNullBinder()
	// Result receiver, marked present.
	data.WriteInt32(1)
	data.WriteBinder(resultReceiverHandle)

	command := ""
	if len(args) > 0 {
		command = args[0]
	}

	if err := raw.Transact(ctx, domain.ShellCommandTransaction, data, reply, 0); err != nil {
		return "", zerr.With(zerr.Wrap(err, "shell command transaction failed"), "command", command)
	}

	if err := reply.ReadException(); err != nil {
		return "", zerr.With(err, "command", command)
	}

	code, err := reply.ReadInt32()
	if err != nil {
		return "", zerr.With(err, "command", command)
	}
	output, err := reply.ReadString16()
	if err != nil {
		return "", zerr.With(err, "command", command)
	}

	if code != 0 {
		return output, zerr.With(zerr.With(zerr.With(domain.ErrCommandResult, "command", command), "result_code", code), "output", output)
	}
	return output, nil
}
