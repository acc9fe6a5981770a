package binder_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dexopt/internal/adapters/binder"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/parcel"
	"go.trai.ch/dexopt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestPackageManager_RegisterDexModule(t *testing.T) {
	ctrl := gomock.NewController(t)
	raw := mocks.NewMockBinder(ctrl)

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

			shared, err := data.ReadBool()
			require.NoError(t, err)
			assert.False(t, shared)

			kind, _, err := data.ReadObject()
			require.NoError(t, err)
			assert.Equal(t, parcel.ObjectNullBinder, kind)
			assert.Equal(t, 0, data.Remaining())

			reply.WriteNoException()
			return nil
		})

	pm := binder.NewPackageManager(raw)
	require.NoError(t, pm.RegisterDexModule(context.Background(), "com.example.host", "/data/plugins/a.apk", false))
}

func TestPackageManager_RemoteException(t *testing.T) {
	ctrl := gomock.NewController(t)
	raw := mocks.NewMockBinder(ctrl)

	raw.EXPECT().
		Transact(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uint32, _, reply *parcel.Parcel, _ uint32) error {
			reply.WriteException(parcel.ExceptionIllegalArgument, "dex module does not exist")
			return nil
		})

	err := binder.NewPackageManager(raw).RegisterDexModule(context.Background(), "com.example.host", "/missing.apk", false)
	require.Error(t, err)
	assert.ErrorContains(t, err, "dex module does not exist")
}

func TestPackageManager_TransportFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	raw := mocks.NewMockBinder(ctrl)

	raw.EXPECT().
		Transact(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("connection reset"))

	err := binder.NewPackageManager(raw).RegisterDexModule(context.Background(), "com.example.host", "/a.apk", true)
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection reset")
}
