package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"garage/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// Exporter выгружает данные аренды в Excel файлы.
type Exporter struct {
	dir    string
	logger *zerolog.Logger
}

func NewExporter(dir string, logger *zerolog.Logger) *Exporter {
	return &Exporter{dir: dir, logger: logger}
}

const rentalsSheet = "Аренды"

// RentalsReport создает Excel файл со списком аренд за период.
func (e *Exporter) RentalsReport(rentals []*models.Rental, from, to time.Time) (string, error) {
	// Создаем папку для экспорта, если не существует
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(rentalsSheet)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	// Заголовок периода
	_ = f.SetCellValue(rentalsSheet, "A1", fmt.Sprintf("Период: %s - %s",
		from.Format("02.01.2006"), to.Format("02.01.2006")))
	_ = f.MergeCell(rentalsSheet, "A1", "G1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(rentalsSheet, "A1", "A1", titleStyle)

	// Заголовки колонок
	headers := []string{"ID", "Автомобиль", "Клиент", "Email", "Начало", "Окончание", "Стоимость"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(rentalsSheet, cell, header)
		_ = f.SetCellStyle(rentalsSheet, cell, cell, headerStyle)
	}

	// Данные аренд
	for i, rental := range rentals {
		row := i + 3
		carName := ""
		if rental.Car != nil {
			carName = rental.Car.Name
		}
		clientName, clientEmail := "", ""
		if rental.Client != nil {
			clientName = fmt.Sprintf("%s %s", rental.Client.FirstName, rental.Client.LastName)
			clientEmail = rental.Client.Email
		}
		_ = f.SetCellValue(rentalsSheet, fmt.Sprintf("A%d", row), rental.ID)
		_ = f.SetCellValue(rentalsSheet, fmt.Sprintf("B%d", row), carName)
		_ = f.SetCellValue(rentalsSheet, fmt.Sprintf("C%d", row), clientName)
		_ = f.SetCellValue(rentalsSheet, fmt.Sprintf("D%d", row), clientEmail)
		_ = f.SetCellValue(rentalsSheet, fmt.Sprintf("E%d", row), rental.StartDate.Format("02.01.2006"))
		_ = f.SetCellValue(rentalsSheet, fmt.Sprintf("F%d", row), rental.EndDate.Format("02.01.2006"))
		_ = f.SetCellValue(rentalsSheet, fmt.Sprintf("G%d", row), rental.TotalPrice)
	}

	// Ширина колонок
	_ = f.SetColWidth(rentalsSheet, "A", "A", 8)
	_ = f.SetColWidth(rentalsSheet, "B", "B", 25)
	_ = f.SetColWidth(rentalsSheet, "C", "C", 25)
	_ = f.SetColWidth(rentalsSheet, "D", "D", 30)
	_ = f.SetColWidth(rentalsSheet, "E", "F", 14)
	_ = f.SetColWidth(rentalsSheet, "G", "G", 14)

	// Удаляем стандартный лист
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("rentals_%s_to_%s.xlsx",
		from.Format("2006-01-02"), to.Format("2006-01-02"))
	filePath := filepath.Join(e.dir, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	e.logger.Info().Str("file_path", filePath).Msg("Excel file created")
	return filePath, nil
}
