package capability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dexopt/internal/adapters/binder"
	"go.trai.ch/dexopt/internal/adapters/capability"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/parcel"
	"go.trai.ch/dexopt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestServiceProvider_RegisterModule(t *testing.T) {
	ctrl := gomock.NewController(t)
	sm := mocks.NewMockServiceManager(ctrl)
	raw := mocks.NewMockBinder(ctrl)
	isa := mocks.NewMockInstructionSetProvider(ctrl)

	sm.EXPECT().GetService(gomock.Any(), domain.PackageServiceName).Return(raw, nil)
	raw.EXPECT().
		Transact(gomock.Any(), domain.TransactionRegisterDexModule, gomock.Any(), gomock.Any(), uint32(0)).
		DoAndReturn(func(_ context.Context, _ uint32, data, reply *parcel.Parcel, _ uint32) error {
			require.NoError(t, data.EnforceInterface(domain.PackageManagerDescriptor))
			pkg, err := data.ReadString16()
			require.NoError(t, err)
			assert.Equal(t, "com.example.host", pkg)
			path, err := data.ReadString16()
			require.NoError(t, err)
			assert.Equal(t, "/data/plugins/a.apk", path)
			reply.WriteNoException()
			return nil
		})

	p := capability.NewServiceProvider(binder.NewHandleCache(sm), "com.example.host", isa)
	require.NoError(t, p.RegisterModule(context.Background(), "/data/plugins/a.apk"))
}

func TestServiceProvider_RegisterModuleWithoutPackage(t *testing.T) {
	ctrl := gomock.NewController(t)
	sm := mocks.NewMockServiceManager(ctrl)

	p := capability.NewServiceProvider(binder.NewHandleCache(sm), "", nil)
	err := p.RegisterModule(context.Background(), "/data/plugins/a.apk")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrMissingPackageName.Error())
}

func TestServiceProvider_ExecutePrivilegedCommand(t *testing.T) {
	ctrl := gomock.NewController(t)
	sm := mocks.NewMockServiceManager(ctrl)
	raw := mocks.NewMockBinder(ctrl)

	sm.EXPECT().GetService(gomock.Any(), domain.PackageServiceName).Return(raw, nil)
	raw.EXPECT().
		Transact(gomock.Any(), domain.ShellCommandTransaction, gomock.Any(), gomock.Any(), uint32(0)).
		DoAndReturn(func(_ context.Context, _ uint32, _, reply *parcel.Parcel, _ uint32) error {
			reply.WriteNoException()
			reply.WriteInt32(0)
			reply.WriteString16("ok")
			return nil
		})

	p := capability.NewServiceProvider(binder.NewHandleCache(sm), "com.example.host", nil)
	out, err := p.ExecutePrivilegedCommand(context.Background(), domain.ReconcileSecondaryDexArgs("com.example.host"))
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
}

func TestServiceProvider_LookupFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	sm := mocks.NewMockServiceManager(ctrl)

	sm.EXPECT().GetService(gomock.Any(), domain.PackageServiceName).Return(nil, domain.ErrDaemonUnavailable)

	p := capability.NewServiceProvider(binder.NewHandleCache(sm), "com.example.host", nil)
	_, err := p.ExecutePrivilegedCommand(context.Background(), []string{"compile"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrServiceNotFound.Error())
	assert.False(t, p.IsAlive(context.Background()))
}

func TestServiceProvider_InstructionSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	isa := mocks.NewMockInstructionSetProvider(ctrl)
	isa.EXPECT().CurrentInstructionSet(gomock.Any()).Return("x86_64", nil)

	p := capability.NewServiceProvider(binder.NewHandleCache(nil), "com.example.host", isa)
	got, err := p.CurrentInstructionSet(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x86_64", got)
}

func TestLegacyProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	isa := mocks.NewMockInstructionSetProvider(ctrl)
	isa.EXPECT().CurrentInstructionSet(gomock.Any()).Return("arm", nil)

	p := capability.NewLegacyProvider(isa)
	ctx := context.Background()

	got, err := p.CurrentInstructionSet(ctx)
	require.NoError(t, err)
	assert.Equal(t, "arm", got)

	err = p.RegisterModule(ctx, "/a.apk")
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCapabilityUnsupported.Error())

	_, err = p.ExecutePrivilegedCommand(ctx, []string{"compile"})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCapabilityUnsupported.Error())

	assert.False(t, p.IsAlive(ctx))
	assert.NoError(t, p.Refresh(ctx))
}

func TestUnsupportedProvider(t *testing.T) {
	p := capability.NewUnsupportedProvider()
	ctx := context.Background()

	got, err := p.CurrentInstructionSet(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultInstructionSet, got)

	assert.ErrorContains(t, p.RegisterModule(ctx, "/a.apk"), domain.ErrCapabilityUnsupported.Error())
	_, err = p.ExecutePrivilegedCommand(ctx, nil)
	assert.ErrorContains(t, err, domain.ErrCapabilityUnsupported.Error())
	assert.False(t, p.Supports(capability.CapInstructionSet))
}
