package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vsinha/aim/pkg/application/services"
	"github.com/vsinha/aim/pkg/domain/entities"
	"github.com/vsinha/aim/pkg/infrastructure/repositories/memory"
)

var scenarioDir = filepath.Join("..", "..", "..", "..", "scenarios", "server")

func TestReportCommand_Text(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewReportCommand(Config{ScenarioDir: scenarioDir, Threshold: -1, Format: "text", Stdout: &buf})

	require.NoError(t, cmd.Execute(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "Components: 4")
	assert.Contains(t, out, "High Failure Rate (>= 0.05): 2")
	assert.Contains(t, out, "REV-A (Server) is short")
	// Each 4-unit SSD line fits in the 5 available on its own
	assert.Contains(t, out, "REV-B (Storage node) is buildable")
	assert.Contains(t, out, "REV-C (Empty chassis) is buildable")
}

func TestReportCommand_SingleRevisionJSON(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewReportCommand(Config{ScenarioDir: scenarioDir, Revision: "REV-A", Threshold: 0.5, Format: "json", Stdout: &buf})

	require.NoError(t, cmd.Execute(context.Background()))

	out := buf.String()
	assert.Contains(t, out, `"failure_rate_threshold": 0.5`)
	assert.Contains(t, out, `"revision_id": "REV-A"`)
	assert.NotContains(t, out, `"revision_id": "REV-B"`)
	// 8 RAM on hand covers the RAM line, the received CPU does not count
	assert.Contains(t, out, `"component_id": "CPU"`)
}

func TestReportCommand_UnknownRevision(t *testing.T) {
	cmd := NewReportCommand(Config{ScenarioDir: scenarioDir, Revision: "nonexistent", Threshold: -1, Format: "text", Stdout: &bytes.Buffer{}})

	err := cmd.Execute(context.Background())
	require.Error(t, err)
	assert.True(t, entities.IsNotFound(err))
}

func TestReportCommand_IntegrityWarnings(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"components.csv": "id,vendor_name,manufacturer_name,model,name,estimated_lead_time,actual_lead_time,failure_rate,cost,cost_date,order_link\n" +
			"CPU,Digikey,Intel,,CPU,,,0.01,,,\n",
		"revisions.csv": "revision_id,name,component_id,quantity\n" +
			"REV-X,Workstation,CPU,1\n" +
			"REV-X,Workstation,GPU,1\n",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}

	var buf bytes.Buffer
	cmd := NewReportCommand(Config{ScenarioDir: dir, Threshold: -1, Format: "text", Stdout: &buf})
	require.NoError(t, cmd.Execute(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "Integrity Warnings")
	assert.Contains(t, out, "revision REV-X references unknown component GPU")
}

func TestReportCommand_Help(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewReportCommand(Config{Help: true, Stdout: &buf}).Execute(context.Background()))
	assert.True(t, strings.HasPrefix(buf.String(), "AIM - Hardware inventory reasoning"))
}

func TestReportCommand_BadScenario(t *testing.T) {
	cmd := NewReportCommand(Config{ScenarioDir: t.TempDir(), Threshold: -1, Format: "text", Stdout: &bytes.Buffer{}})
	err := cmd.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load scenario")
}

func TestDemoCommand(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewDemoCommand(Config{Stdout: &buf}).Execute(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "Updated component cost: 123.45")
	assert.Equal(t, 2, strings.Count(out, "state to: received"))
	assert.Contains(t, out, "Buildable with received stock: false (1 short lines)")
	assert.Contains(t, out, "Buildable once on hand: true")
	assert.Contains(t, out, "Value: 123.45")
	assert.Contains(t, out, "Value: 200.00")
	assert.Contains(t, out, "Audit events recorded:")
}

func TestDemoCommand_SQLite(t *testing.T) {
	t.Setenv("AIM_STORE_DRIVER", "sqlite")
	t.Setenv("AIM_SQLITE_PATH", filepath.Join(t.TempDir(), "demo.db"))

	var buf bytes.Buffer
	require.NoError(t, NewDemoCommand(Config{Stdout: &buf}).Execute(context.Background()))
	assert.Contains(t, buf.String(), "Buildable once on hand: true")
}

func TestServeCommand_StopsOnCancel(t *testing.T) {
	t.Setenv("AIM_HTTP_ADDR", "127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- NewServeCommand(Config{Threshold: -1}).Execute(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve command did not stop after cancel")
	}
}

func TestAuditLogWarnsOnShortages(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	audit, err := newAuditLog(zap.New(core))
	require.NoError(t, err)

	store := memory.NewStore()
	component, err := entities.NewComponent("Digikey", "Intel")
	require.NoError(t, err)
	component.ID = "CPU"
	cpu, err := store.InsertComponent(component)
	require.NoError(t, err)
	rev, err := entities.NewHardwareRevision("Server", entities.BOMLine{ComponentID: cpu.ID, Quantity: 2})
	require.NoError(t, err)
	rev, err = store.InsertRevision(rev)
	require.NoError(t, err)

	svc := services.NewCore(store, services.Options{Events: audit})
	shortfalls, err := svc.Verifier.VerifyBuildability(rev.ID)
	require.NoError(t, err)
	require.Len(t, shortfalls, 1)

	require.Eventually(t, func() bool {
		return logs.FilterMessage("component short").FilterField(zap.String("component_id", "CPU")).Len() == 1
	}, 2*time.Second, 10*time.Millisecond)
}
