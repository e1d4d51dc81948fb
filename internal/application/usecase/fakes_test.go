package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"
	"github.com/diillson/supply-kpi-dashboard-go/internal/shared/types"
)

var errNotFound = errors.New("not found")

type fakeSource struct {
	texts map[string]string
	calls atomic.Int32

	mu    sync.Mutex
	tried []string
}

func (f *fakeSource) Fetch(_ context.Context, location string) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.tried = append(f.tried, location)
	f.mu.Unlock()
	if text, ok := f.texts[location]; ok {
		return text, nil
	}
	return "", errNotFound
}

type fakeConsole struct {
	mu       sync.Mutex
	out      strings.Builder
	warnings []string
	errors   []string
	success  []string
	trends   []string
}

func (c *fakeConsole) Print(a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprint(&c.out, a...)
}

func (c *fakeConsole) Printf(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(&c.out, format, a...)
}

func (c *fakeConsole) Println(a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(&c.out, a...)
}

func (c *fakeConsole) LogInfo(format string, a ...interface{}) {}

func (c *fakeConsole) LogWarning(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogError(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errors = append(c.errors, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) LogSuccess(format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.success = append(c.success, fmt.Sprintf(format, a...))
}

func (c *fakeConsole) Status(string) types.StatusHandle { return nopStatus{} }

func (c *fakeConsole) CreateTable() types.TableInterface { return &fakeTable{} }

func (c *fakeConsole) DisplayTrendBars(title string, points []types.TrendPoint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trends = append(c.trends, fmt.Sprintf("%s:%d", title, len(points)))
}

type nopStatus struct{}

func (nopStatus) Update(string) {}
func (nopStatus) Stop()         {}

type fakeTable struct {
	lines []string
}

func (t *fakeTable) AddColumn(name string, _ ...interface{}) {
	t.lines = append(t.lines, name)
}

func (t *fakeTable) AddRow(cells ...interface{}) {
	t.lines = append(t.lines, fmt.Sprint(cells...))
}

func (t *fakeTable) Render() string {
	return strings.Join(t.lines, "\n") + "\n"
}

type fakeExport struct {
	blobs []entity.ExportBlob
	dashs []entity.Dashboard
}

func (f *fakeExport) ExportToCSV(blob entity.ExportBlob, dir string) (string, error) {
	f.blobs = append(f.blobs, blob)
	return dir + "/" + blob.Filename, nil
}

func (f *fakeExport) ExportToXLSX(blob entity.ExportBlob, dir string) (string, error) {
	f.blobs = append(f.blobs, blob)
	return dir + "/" + strings.TrimSuffix(blob.Filename, ".csv") + ".xlsx", nil
}

func (f *fakeExport) ExportToJSON(dash entity.Dashboard, name, dir string) (string, error) {
	f.dashs = append(f.dashs, dash)
	return dir + "/" + name + ".json", nil
}

func (f *fakeExport) ExportToPDF(dash entity.Dashboard, name, dir string) (string, error) {
	f.dashs = append(f.dashs, dash)
	return dir + "/" + name + ".pdf", nil
}

const complianceCSV = "CLIENTE;CLASIFICACION 2;FECHA ENTREGA;ENTREGADOS AT;ENTREGADOS FT;NO ENTREGADOS\n" +
	"A;X;15/01/2025;8;2;0\n" +
	"A;X;10/02/2025;6;3;1\n" +
	"B;Y;05/02/2025;10;0;0\n"

const inventoryCSV = "ALMACÉN;Material;Libre utilización;Estado\n" +
	"A;M1;0;LOW\n" +
	"A;M1;0;LOW\n" +
	"A;M2;5;OK\n"

const delaysCSV = "CLIENTE;MES;COMPRAS;COMPRAS EQUIPOS;ALMACEN;CERCANA CS;LEJANA OBRA\n" +
	"A;2025-01;1;0;0;1;0\n" +
	"A;2025-02;1;0;0;0;1\n" +
	"B;2025-02;0;1;1;0;1\n" +
	"B;2025-02;1;0;0;0;0\n"

const evolutionCSV = "FECHA;OBRA;% DISPONIBILIDAD;CANTIDAD STOCK NULO\n" +
	"01/01/2025;Norte;90,5;4\n" +
	"15/01/2025;Norte;89,5;6\n" +
	"01/02/2025;Norte;95;\n"

func dataset(name string) types.DatasetConfig {
	ds, ok := types.DefaultConfig().FindDataset(name)
	if !ok {
		panic("unknown default dataset " + name)
	}
	return ds
}
