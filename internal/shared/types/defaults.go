package types

import "github.com/diillson/supply-kpi-dashboard-go/internal/domain/entity"

// DefaultConfig returns the built-in configuration with every known dataset.
func DefaultConfig() *Config {
	return &Config{
		Dataset: "cumplimiento",
		Logging: LoggingConfig{Level: "warn", Format: "console", Output: "stderr"},
		Source:  SourceConfig{TimeoutSeconds: 30},
		Datasets: []DatasetConfig{
			complianceDataset(),
			inventoryDataset(),
			delaysDataset(),
			evolutionDataset(),
		},
	}
}

// DefaultPolarities is the canonical comparison rule for the delivery shares:
// staying flat is fine for on-time deliveries and bad for late or missing ones.
func DefaultPolarities() map[string]entity.Polarity {
	higherIsBetter := entity.Polarity{
		Up:   entity.DirectionImproved,
		Down: entity.DirectionWorsened,
		Flat: entity.DirectionImproved,
	}
	lowerIsBetter := entity.Polarity{
		Up:   entity.DirectionWorsened,
		Down: entity.DirectionImproved,
		Flat: entity.DirectionWorsened,
	}
	return map[string]entity.Polarity{
		string(entity.ColOnTime):       higherIsBetter,
		string(entity.ColLate):         lowerIsBetter,
		string(entity.ColNotDelivered): lowerIsBetter,
	}
}

func complianceDataset() DatasetConfig {
	return DatasetConfig{
		Name:    "cumplimiento",
		Title:   "Cumplimiento de entregas",
		Kind:    entity.KindCompliance,
		Sources: []string{"CUMPLIMIENTO_2025.csv", "CUMPLIMIENTO.csv", "cumplimiento.csv", "CUMPLIMIENTO 2025.csv"},
		Columns: entity.CandidateTable{
			{Name: entity.ColClient, Required: true, Kind: entity.KindText,
				Candidates: []string{"CLIENTE / OBRA", "CLIENTE NRO.", "CLIENTE"}},
			{Name: entity.ColClassification, Kind: entity.KindText,
				Candidates: []string{"CLASIFICACION 2", "CLASIFICACIÓN 2", "CLASIFICACION2", "CLASIFICACION_2"}},
			{Name: entity.ColGCOC, Kind: entity.KindText,
				Candidates: []string{"GC OC", "GC_OC", "GCOC"}},
			{Name: entity.ColExpectedDate, Required: true, Kind: entity.KindDate,
				Candidates: []string{"FECHA ENTREGA ESPERADA", "FECHA ENTREGA", "MES ENTREGA", "MES DE ENTREGA", "FECHA OC", "FECHA ENTREGA OC"}},
			{Name: entity.ColOnTime, Required: true, Kind: entity.KindNumber,
				Candidates: []string{"ENTREGADOS AT"}},
			{Name: entity.ColLate, Required: true, Kind: entity.KindNumber,
				Candidates: []string{"ENTREGADOS FT"}},
			{Name: entity.ColNotDelivered, Required: true, Kind: entity.KindNumber,
				Candidates: []string{"NO ENTREGADOS"}},
		},
		Dimensions: []entity.Dimension{
			{Name: "client", Column: entity.ColClient},
			{Name: "classification", Column: entity.ColClassification},
			{Name: "gcoc", Column: entity.ColGCOC},
			{Name: "month", Time: true},
		},
		Measures: []MeasureConfig{
			{Column: entity.ColOnTime, Label: "Entregados AT"},
			{Column: entity.ColLate, Label: "Entregados FT"},
			{Column: entity.ColNotDelivered, Label: "No entregados"},
		},
		Polarities:    DefaultPolarities(),
		ExportPrefix:  "NO_ENTREGADOS",
		ExportNonZero: entity.ColNotDelivered,
		ExportColumns: []entity.LogicalColumn{entity.ColClient, entity.ColExpectedDate, entity.ColOnTime, entity.ColLate, entity.ColNotDelivered},
	}
}

func inventoryDataset() DatasetConfig {
	return DatasetConfig{
		Name:    "mm",
		Title:   "Análisis MM",
		Kind:    entity.KindInventory,
		Sources: []string{"ANALISIS-MM.csv", "./ANALISIS-MM.csv"},
		Columns: entity.CandidateTable{
			{Name: entity.ColWarehouse, Required: true, Kind: entity.KindText,
				Candidates: []string{"ALMACEN", "ALMACÉN", "CLIENTE (ALMACEN)", "CLIENTE"}},
			{Name: entity.ColMaterial, Required: true, Kind: entity.KindText,
				Candidates: []string{"MATERIAL", "CODIGO ITEM", "CÓDIGO ITEM", "CODIGOITEM"}},
			{Name: entity.ColFreeQty, Required: true, Kind: entity.KindNumber,
				Candidates: []string{"LIBRE UTILIZACION", "LIBRE UTILIZACIÓN", "LIBRE UTILIZACION (LOGIN)", "LIBRE UTILIZACIÓN (LOGIN)"}},
			{Name: entity.ColStatus, Required: true, Kind: entity.KindText,
				Candidates: []string{"ESTADO", "ESTADOS", "ID ESTADO", "IDESTADO", "ID_ESTADO", "ESTADO ITEM"}},
		},
		Dimensions: []entity.Dimension{
			{Name: "warehouse", Column: entity.ColWarehouse},
		},
		ExportPrefix:  "MM",
		ExportColumns: []entity.LogicalColumn{entity.ColWarehouse, entity.ColMaterial, entity.ColFreeQty, entity.ColStatus},
	}
}

func delaysDataset() DatasetConfig {
	flag := func(name entity.LogicalColumn, candidates ...string) entity.ColumnSpec {
		return entity.ColumnSpec{Name: name, Kind: entity.KindFlag, Candidates: candidates}
	}
	return DatasetConfig{
		Name:    "demoras",
		Title:   "Demoras",
		Kind:    entity.KindDelays,
		Sources: []string{"DEMORAS.csv"},
		Columns: entity.CandidateTable{
			{Name: entity.ColClient, Kind: entity.KindText, Candidates: []string{"CLIENTE"}},
			{Name: entity.ColMonthLabel, Kind: entity.KindText, Candidates: []string{"MES", "MES ENTREGA", "MES DE ENTREGA"}},
			{Name: entity.ColDate, Kind: entity.KindDate, Candidates: []string{"FECHA", "FECHA ENTREGA", "FECHA DE ENTREGA"}},
			flag("AREA_SUPPLY_CHAIN", "CADENA D' SUMINISTRO", "CADENA DE SUMINISTRO"),
			flag("AREA_WAREHOUSE", "ALMACEN"),
			flag("AREA_PURCHASING", "COMPRAS"),
			flag("AREA_PURCHASING_EQUIPMENT", "COMPRAS EQUIPOS"),
			flag("AREA_PURCHASING_MINOR", "COMPRAS EQUIPOS MENORES"),
			flag("AREA_PURCHASING_AGV", "COMPRAS AGV"),
			flag("AREA_MINOR_EQUIPMENT", "EQUIPOS MENORES"),
			flag("AREA_BLEN", "BLEN"),
			flag("MOTIVE_NEAR_CS", "CERCANA CS"),
			flag("MOTIVE_FAR_CS", "LEJANA CS"),
			flag("MOTIVE_SITE_CS", "OBRA CS"),
			flag("MOTIVE_NEAR_SITE", "CERCANA OBRA"),
			flag("MOTIVE_FAR_SITE", "LEJANA OBRA"),
			flag("MOTIVE_SITE_SITE", "OBRA OBRA"),
		},
		Dimensions: []entity.Dimension{
			{Name: "client", Column: entity.ColClient},
			{Name: "month", Time: true},
		},
		Flags: []MeasureConfig{
			{Column: "AREA_SUPPLY_CHAIN", Label: "Cadena de suministro"},
			{Column: "AREA_WAREHOUSE", Label: "Almacén"},
			{Column: "AREA_PURCHASING", Label: "Compras"},
			{Column: "AREA_PURCHASING_EQUIPMENT", Label: "Compras equipos"},
			{Column: "AREA_PURCHASING_MINOR", Label: "Compras equipos menores"},
			{Column: "AREA_PURCHASING_AGV", Label: "Compras AGV"},
			{Column: "AREA_MINOR_EQUIPMENT", Label: "Equipos menores"},
			{Column: "AREA_BLEN", Label: "BLEN"},
		},
		Motives: []MeasureConfig{
			{Column: "MOTIVE_NEAR_CS", Label: "Cercana CS"},
			{Column: "MOTIVE_FAR_CS", Label: "Lejana CS"},
			{Column: "MOTIVE_SITE_CS", Label: "Obra CS"},
			{Column: "MOTIVE_NEAR_SITE", Label: "Cercana obra"},
			{Column: "MOTIVE_FAR_SITE", Label: "Lejana obra"},
			{Column: "MOTIVE_SITE_SITE", Label: "Obra obra"},
		},
		ExportPrefix: "DEMORAS_filtrado",
	}
}

func evolutionDataset() DatasetConfig {
	return DatasetConfig{
		Name:    "evolucion",
		Title:   "Evolución de stock",
		Kind:    entity.KindEvolution,
		Sources: []string{"EVOLUCION.csv"},
		Columns: entity.CandidateTable{
			{Name: entity.ColDate, Required: true, Kind: entity.KindDate, Candidates: []string{"FECHA"}},
			{Name: entity.ColSite, Required: true, Kind: entity.KindText, Candidates: []string{"OBRA"}},
			{Name: entity.ColAvailability, Kind: entity.KindNumber, Candidates: []string{"% DISPONIBILIDAD", "DISPONIBILIDAD"}},
			{Name: "STOCK_NULL", Kind: entity.KindNumber, Candidates: []string{"CANTIDAD STOCK NULO"}},
			{Name: "BELOW_REORDER", Kind: entity.KindNumber, Candidates: []string{"CANTIDAD MENOR A PUNTO DE PEDIDO"}},
			{Name: "ABOVE_REORDER", Kind: entity.KindNumber, Candidates: []string{"CANTIDAD MAYOR A PUNTO DE PEDIDO"}},
			{Name: "ABOVE_MAX", Kind: entity.KindNumber, Candidates: []string{"CANTIDAD MAYOR A STOCK MAXIMO"}},
		},
		Dimensions: []entity.Dimension{
			{Name: "site", Column: entity.ColSite},
		},
		Measures: []MeasureConfig{
			{Column: "ABOVE_MAX", Label: "Mayor a stock máximo"},
			{Column: "ABOVE_REORDER", Label: "Mayor a punto de pedido"},
			{Column: "BELOW_REORDER", Label: "Menor a punto de pedido"},
			{Column: "STOCK_NULL", Label: "Stock nulo"},
			{Column: entity.ColAvailability, Label: "% Disponibilidad"},
		},
		ExportPrefix: "EVOLUCION",
	}
}
