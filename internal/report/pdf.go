// Package report renders group summary PDFs.
package report

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

type MemberLine struct {
	Name          string
	Email         string
	Role          string
	EntryDate     string
	DepartureDate string
}

type DocumentLine struct {
	Name string
	Size int64
}

// GroupReport is the data rendered into the group summary PDF.
type GroupReport struct {
	GroupName      string
	Description    string
	TypeGroupName  string
	Kind           string
	Representative string
	Manager        string
	CreatedAt      time.Time
	Members        []MemberLine
	Documents      []DocumentLine
}

// Render writes the report as a PDF to path.
func Render(r *GroupReport, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Group Report - %s", r.GroupName), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Group Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, r.GroupName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	if r.Description != "" {
		pdf.MultiCell(0, 6, r.Description, "", "L", false)
	}
	pdf.Ln(2)

	field := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(45, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 7, value, "", 1, "L", false, 0, "")
	}

	field("Type", fmt.Sprintf("%s (%s)", r.TypeGroupName, r.Kind))
	field("Representative", r.Representative)
	field("Manager", r.Manager)
	field("Created at", r.CreatedAt.Format("2006-01-02"))
	pdf.Ln(4)

	// Members table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Members (%d)", len(r.Members)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(45, 7, "Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(55, 7, "Email", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Role", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Entry", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Departure", "1", 1, "L", true, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, m := range r.Members {
		pdf.CellFormat(45, 7, m.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 7, m.Email, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, m.Role, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, m.EntryDate, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, m.DepartureDate, "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Documents list
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("Documents (%d)", len(r.Documents)), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, d := range r.Documents {
		pdf.CellFormat(0, 6, fmt.Sprintf("%s (%d bytes)", d.Name, d.Size), "", 1, "L", false, 0, "")
	}

	return pdf.OutputFileAndClose(path)
}
