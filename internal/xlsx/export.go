package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"sigec/internal/codec"
)

// ExportSheet é o nome da aba gerada na exportação.
const ExportSheet = "Clientes"

// Export escreve em w um .xlsx com o cabeçalho em destaque e uma linha por cadastro.
// Marcadores de texto são removidos: todas as células são gravadas como texto.
func Export(w io.Writer, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ExportSheet); err != nil {
		return fmt.Errorf("falha ao criar aba: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("falha ao criar estilo do cabeçalho: %w", err)
	}

	for col, name := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("falha ao converter coordenadas: %w", err)
		}
		if err := f.SetCellStr(ExportSheet, cell, name); err != nil {
			return fmt.Errorf("falha ao gravar cabeçalho %s: %w", cell, err)
		}
	}
	if len(header) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(header), 1)
		if err := f.SetCellStyle(ExportSheet, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("falha ao aplicar estilo do cabeçalho: %w", err)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(header))
		if err := f.SetColWidth(ExportSheet, "A", lastCol, 22); err != nil {
			return fmt.Errorf("falha ao definir largura das colunas: %w", err)
		}
	}

	for i, row := range rows {
		for col, v := range row {
			if v == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("falha ao converter coordenadas: %w", err)
			}
			if err := f.SetCellStr(ExportSheet, cell, codec.Unmark(v)); err != nil {
				return fmt.Errorf("falha ao gravar célula %s: %w", cell, err)
			}
		}
	}

	if err := f.SetPanes(ExportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("falha ao congelar cabeçalho: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("falha ao escrever arquivo: %w", err)
	}
	return nil
}
