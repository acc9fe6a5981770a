package daemon_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/dexopt/internal/adapters/daemon"
	"go.trai.ch/dexopt/internal/core/domain"
	"go.trai.ch/dexopt/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestMetrics_Exposition(t *testing.T) {
	ctrl := gomock.NewController(t)
	modules := mocks.NewMockModuleRegistry(ctrl)
	modules.EXPECT().All().Return([]domain.SecondaryModule{{Path: "/a.apk"}, {Path: "/b.apk"}}, nil).AnyTimes()

	m := daemon.NewMetrics(modules, func() float64 { return 42 })
	m.ObserveTransaction(domain.PackageServiceName, domain.TransactionRegisterDexModule, true, nil)
	m.ObserveTransaction(domain.PackageServiceName, domain.ShellCommandTransaction, false, assert.AnError)
	m.ObserveTransaction(domain.PackageServiceName, 99, false, nil)
	m.ObserveCommand(domain.CommandCompile, 0)
	m.ObserveCommand(domain.CommandCompile, 1)
	m.ObserveCommand("", 1)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL) //nolint:noctx // test server
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)

	assert.Contains(t, text, `dexopt_transactions_total{mode="oneway",result="success",service="package",transaction="registerDexModule"} 1`)
	assert.Contains(t, text, `dexopt_transactions_total{mode="sync",result="failure",service="package",transaction="shellCommand"} 1`)
	assert.Contains(t, text, `dexopt_transactions_total{mode="sync",result="success",service="package",transaction="99"} 1`)
	assert.Contains(t, text, `dexopt_shell_commands_total{command="compile",result="success"} 1`)
	assert.Contains(t, text, `dexopt_shell_commands_total{command="compile",result="failure"} 1`)
	assert.Contains(t, text, `dexopt_shell_commands_total{command="none",result="failure"} 1`)
	assert.Contains(t, text, "dexopt_registered_modules 2")
	assert.Contains(t, text, "dexopt_idle_remaining_seconds 42")
}
