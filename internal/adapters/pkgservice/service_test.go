package pkgservice_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dexopt/internal/adapters/artifact"
	"go.trai.ch/dexopt/internal/adapters/pkgservice"
	"go.trai.ch/dexopt/internal/adapters/registry"
	"go.trai.ch/dexopt/internal/adapters/telemetry"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/parcel"
	"go.trai.ch/dexopt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const pkg = "com.example.host"

type fixture struct {
	svc      *pkgservice.Service
	store    *registry.Store
	compiler *mocks.MockArtifactCompiler
	watcher  *mocks.MockModuleWatcher
	dir      string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	logger.EXPECT().Warn(gomock.Any()).AnyTimes()
	logger.EXPECT().Error(gomock.Any()).AnyTimes()

	isa := mocks.NewMockInstructionSetProvider(ctrl)
	isa.EXPECT().CurrentInstructionSet(gomock.Any()).Return("arm64", nil).AnyTimes()

	dir := t.TempDir()
	store, err := registry.NewStore(filepath.Join(dir, "state", "modules.json"))
	require.NoError(t, err)

	compiler := mocks.NewMockArtifactCompiler(ctrl)
	watcher := mocks.NewMockModuleWatcher(ctrl)

	svc := pkgservice.New(store, compiler, artifact.NewResolver(logger), isa, telemetry.NewNoOpTracer(), logger,
		pkgservice.WithWatcher(watcher),
		pkgservice.WithClock(func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }),
	)

	return &fixture{svc: svc, store: store, compiler: compiler, watcher: watcher, dir: dir}
}

func (f *fixture) writeModule(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(f.dir, name)
	require.NoError(t, os.WriteFile(path, []byte("dex\n035\x00"+name), 0o600))
	return path
}

func registerRequest(token, packageName, path string) *parcel.Parcel {
	data := parcel.Obtain()
	data.WriteInterfaceToken(token)
	data.WriteString16(packageName)
	data.WriteString16(path)
	data.WriteBool(false)
	data.WriteNullBinder()
	return data
}

func shellRequest(args ...string) *parcel.Parcel {
	data := parcel.Obtain()
	data.WriteFileDescriptor(0)
	data.WriteFileDescriptor(1)
	data.WriteFileDescriptor(2)
	data.WriteStringArray(args)
	data.WriteNullBinder()
	data.WriteInt32(1)
	data.WriteBinder(1)
	return data
}

func readShellReply(t *testing.T, reply *parcel.Parcel) (int32, string) {
	t.Helper()
	require.NoError(t, reply.ReadException())
	code, err := reply.ReadInt32()
	require.NoError(t, err)
	out, err := reply.ReadString16()
	require.NoError(t, err)
	return code, out
}

func TestService_RegisterDexModule(t *testing.T) {
	f := newFixture(t)
	path := f.writeModule(t, "plugin.apk")
	f.watcher.EXPECT().Watch(path).Return(nil)

	data := registerRequest(domain.PackageManagerDescriptor, pkg, path)
	reply := parcel.Obtain()
	defer data.Recycle()
	defer reply.Recycle()

	handled, err := f.svc.OnTransact(context.Background(), domain.TransactionRegisterDexModule, data, reply)
	require.NoError(t, err)
	assert.True(t, handled)
	require.NoError(t, reply.ReadException())

	modules, err := f.store.List(pkg)
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, path, modules[0].Path)
	assert.Len(t, modules[0].Fingerprint, 16)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), modules[0].RegisteredAt)
}

func TestService_RegisterDexModuleRejectsMissingFile(t *testing.T) {
	f := newFixture(t)

	data := registerRequest(domain.PackageManagerDescriptor, pkg, filepath.Join(f.dir, "missing.apk"))
	reply := parcel.Obtain()
	defer data.Recycle()
	defer reply.Recycle()

	handled, err := f.svc.OnTransact(context.Background(), domain.TransactionRegisterDexModule, data, reply)
	require.NoError(t, err)
	assert.True(t, handled)

	err = reply.ReadException()
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrSourceNotFound.Error())

	modules, err := f.store.All()
	require.NoError(t, err)
	assert.Empty(t, modules)
}

func TestService_RegisterDexModuleRejectsForeignToken(t *testing.T) {
	f := newFixture(t)

	data := registerRequest("android.os.IServiceManager", pkg, "/a.apk")
	reply := parcel.Obtain()
	defer data.Recycle()
	defer reply.Recycle()

	_, err := f.svc.OnTransact(context.Background(), domain.TransactionRegisterDexModule, data, reply)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrInterfaceMismatch.Error())
}

func TestService_UnknownTransaction(t *testing.T) {
	f := newFixture(t)
	data := parcel.Obtain()
	reply := parcel.Obtain()
	defer data.Recycle()
	defer reply.Recycle()

	handled, err := f.svc.OnTransact(context.Background(), 0x7fff, data, reply)
	require.NoError(t, err)
	assert.False(t, handled)

	handled, err = f.svc.OnTransact(context.Background(), domain.PingTransaction, data, reply)
	require.NoError(t, err)
	assert.True(t, handled)
}

func TestService_CompileCommand(t *testing.T) {
	f := newFixture(t)
	a := f.writeModule(t, "a.apk")
	b := f.writeModule(t, "b.apk")
	f.watcher.EXPECT().Watch(gomock.Any()).Return(nil).Times(2)
	require.NoError(t, f.svc.RegisterDexModule(pkg, a, false))
	require.NoError(t, f.svc.RegisterDexModule(pkg, b, false))

	var compiled []string
	f.compiler.EXPECT().
		CompileArtifact(gomock.Any(), gomock.Any(), gomock.Any(), domain.FilterVerify).
		DoAndReturn(func(_ context.Context, src string, loc domain.ArtifactLocation, _ string) error {
			compiled = append(compiled, src)
			assert.Equal(t, filepath.Join(f.dir, "oat", "arm64", strings.TrimSuffix(filepath.Base(src), ".apk")+".odex"), loc.Path)
			return nil
		}).
		Times(2)

	data := shellRequest(domain.CompileSecondaryDexArgs(domain.FilterVerify, pkg)...)
	reply := parcel.Obtain()
	defer data.Recycle()
	defer reply.Recycle()

	handled, err := f.svc.OnTransact(context.Background(), domain.ShellCommandTransaction, data, reply)
	require.NoError(t, err)
	assert.True(t, handled)

	code, out := readShellReply(t, reply)
	assert.Equal(t, int32(0), code)
	assert.True(t, strings.HasSuffix(out, "Success"), out)
	assert.Equal(t, []string{a, b}, compiled)
}

func TestService_CompileSkipsValidArtifactUnlessForced(t *testing.T) {
	f := newFixture(t)
	a := f.writeModule(t, "a.apk")
	f.watcher.EXPECT().Watch(a).Return(nil)
	require.NoError(t, f.svc.RegisterDexModule(pkg, a, false))

	oat := filepath.Join(f.dir, "oat", "arm64", "a.odex")
	require.NoError(t, os.MkdirAll(filepath.Dir(oat), 0o750))
	require.NoError(t, os.WriteFile(oat, []byte("oat"), 0o600))

	res := f.svc.Exec(context.Background(), []string{"compile", "--secondary-dex", "-m", "verify", pkg})
	assert.Equal(t, int32(0), res.Code)
	assert.Contains(t, res.Output, domain.AlreadyExistsDiagnostic)

	f.compiler.EXPECT().CompileArtifact(gomock.Any(), a, gomock.Any(), "verify").Return(nil)
	res = f.svc.Exec(context.Background(), []string{"compile", "-f", "--secondary-dex", "-m", "verify", pkg})
	assert.Equal(t, int32(0), res.Code)
}

func TestService_CompileFailure(t *testing.T) {
	f := newFixture(t)
	a := f.writeModule(t, "a.apk")
	f.watcher.EXPECT().Watch(a).Return(nil)
	require.NoError(t, f.svc.RegisterDexModule(pkg, a, false))

	f.compiler.EXPECT().CompileArtifact(gomock.Any(), a, gomock.Any(), gomock.Any()).Return(domain.ErrExternalToolFailure)

	res := f.svc.Exec(context.Background(), domain.CompileSecondaryDexArgs(domain.FilterSpeedProfile, pkg))
	assert.Equal(t, int32(1), res.Code)
	assert.Contains(t, res.Output, "Failure: 1 of 1 modules failed")
}

func TestService_CompileArgumentErrors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no package", args: []string{"compile", "-f", "--secondary-dex", "-m", "verify"}, want: "package name required"},
		{name: "no filter", args: []string{"compile", "--secondary-dex", pkg}, want: "compiler filter required"},
		{name: "dangling filter", args: []string{"compile", "--secondary-dex", pkg, "-m"}, want: "missing compiler filter"},
		{name: "primary dex", args: []string{"compile", "-m", "verify", pkg}, want: "only --secondary-dex"},
		{name: "unknown flag", args: []string{"compile", "-x", pkg}, want: "unknown option: -x"},
		{name: "two packages", args: []string{"compile", "a", "b"}, want: "unexpected argument: b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := f.svc.Exec(context.Background(), tt.args)
			assert.Equal(t, int32(1), res.Code)
			assert.Contains(t, res.Output, tt.want)
			assert.Contains(t, res.Output, domain.ErrShellCommandUsage.Error())
		})
	}
}

func TestService_CompileWithoutModules(t *testing.T) {
	f := newFixture(t)

	res := f.svc.Exec(context.Background(), domain.CompileSecondaryDexArgs(domain.FilterVerify, pkg))
	assert.Equal(t, int32(0), res.Code)
	assert.Contains(t, res.Output, "Success")
}

func TestService_ReconcileCommand(t *testing.T) {
	f := newFixture(t)
	keep := f.writeModule(t, "keep.apk")
	gone := f.writeModule(t, "gone.apk")
	f.watcher.EXPECT().Watch(gomock.Any()).Return(nil).Times(2)
	require.NoError(t, f.svc.RegisterDexModule(pkg, keep, false))
	require.NoError(t, f.svc.RegisterDexModule(pkg, gone, false))

	oat := filepath.Join(f.dir, "oat", "arm64", "gone.odex")
	require.NoError(t, os.MkdirAll(filepath.Dir(oat), 0o750))
	require.NoError(t, os.WriteFile(oat, []byte("oat"), 0o600))
	require.NoError(t, os.Remove(gone))

	data := shellRequest(domain.ReconcileSecondaryDexArgs(pkg)...)
	reply := parcel.Obtain()
	defer data.Recycle()
	defer reply.Recycle()

	_, err := f.svc.OnTransact(context.Background(), domain.ShellCommandTransaction, data, reply)
	require.NoError(t, err)
	code, out := readShellReply(t, reply)
	assert.Equal(t, int32(0), code)
	assert.Contains(t, out, "Reconciled 1")

	modules, err := f.store.List(pkg)
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Equal(t, keep, modules[0].Path)
	assert.NoFileExists(t, oat)
}

func TestService_UnknownCommand(t *testing.T) {
	f := newFixture(t)

	res := f.svc.Exec(context.Background(), []string{"dump"})
	assert.Equal(t, int32(1), res.Code)
	assert.Contains(t, res.Output, "Unknown command: dump")

	res = f.svc.Exec(context.Background(), nil)
	assert.Equal(t, int32(1), res.Code)
}

func TestService_Forget(t *testing.T) {
	f := newFixture(t)
	a := f.writeModule(t, "a.apk")
	f.watcher.EXPECT().Watch(a).Return(nil)
	require.NoError(t, f.svc.RegisterDexModule(pkg, a, false))

	require.NoError(t, f.svc.Forget(context.Background(), a))
	require.NoError(t, f.svc.Forget(context.Background(), a))

	modules, err := f.store.All()
	require.NoError(t, err)
	assert.Empty(t, modules)
}

func TestService_CommandObserver(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	isa := mocks.NewMockInstructionSetProvider(ctrl)

	store, err := registry.NewStore(filepath.Join(t.TempDir(), "modules.json"))
	require.NoError(t, err)

	type observed struct {
		command string
		code    int32
	}
	var got []observed
	svc := pkgservice.New(store, mocks.NewMockArtifactCompiler(ctrl), artifact.NewResolver(logger), isa,
		telemetry.NewNoOpTracer(), logger,
		pkgservice.WithCommandObserver(func(command string, code int32) {
			got = append(got, observed{command: command, code: code})
		}),
	)

	for _, args := range [][]string{{"dump"}, {domain.CommandReconcile, pkg}} {
		data := shellRequest(args...)
		reply := parcel.Obtain()
		handled, err := svc.OnTransact(context.Background(), domain.ShellCommandTransaction, data, reply)
		require.NoError(t, err)
		require.True(t, handled)
		data.Recycle()
		reply.Recycle()
	}

	assert.Equal(t, []observed{
		{command: "dump", code: 1},
		{command: domain.CommandReconcile, code: 0},
	}, got)
}
