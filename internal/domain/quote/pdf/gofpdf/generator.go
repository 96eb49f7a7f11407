package gofpdf

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"prema-telhados/go_backend/internal/domain/quote"
	"prema-telhados/go_backend/internal/obs"
)

const (
	pageWidth   = 210.0
	margin      = 15.0
	contentW    = pageWidth - 2*margin
	photoMaxH   = 110.0
	coreFamily  = "Helvetica"
	utf8Family  = "DejaVu"
	regularFont = "DejaVuSans.ttf"
	boldFont    = "DejaVuSans-Bold.ttf"
)

// Generator renders proposals as A4 PDFs. With FontDir set it embeds the
// DejaVu TTF fonts found there; otherwise it uses the core Helvetica font
// through the cp1252 translator.
type Generator struct {
	FontDir string
}

func New(fontDir string) *Generator { return &Generator{FontDir: fontDir} }

type doc struct {
	pdf    *gofpdf.Fpdf
	family string
	tr     func(string) string
}

func (g *Generator) Generate(p quote.Proposal) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, 18)

	d := &doc{pdf: pdf, family: coreFamily, tr: pdf.UnicodeTranslatorFromDescriptor("")}
	if g.FontDir != "" {
		regular := filepath.Join(g.FontDir, regularFont)
		bold := filepath.Join(g.FontDir, boldFont)
		obs.Logger.Debug("proposal_pdf_fonts", "regular", regular, "bold", bold)
		pdf.AddUTF8Font(utf8Family, "", regular)
		pdf.AddUTF8Font(utf8Family, "B", bold)
		d.family = utf8Family
		d.tr = func(s string) string { return s }
	}
	if err := pdf.Error(); err != nil {
		return nil, err
	}

	pdf.SetTitle(d.tr(fmt.Sprintf("Proposta Comercial %04d", p.Number)), false)
	pdf.SetAuthor(d.tr(p.Company.Name), false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		d.font("", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, d.tr(fmt.Sprintf("%s • Página %d", p.Company.Name, pdf.PageNo())), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})
	pdf.AddPage()

	d.header(p)
	d.parties(p)
	d.scope(p)
	d.table("Serviços", p.Services())
	d.table("Materiais", p.Materials())
	d.totals(p)
	d.terms(p)
	d.signatures(p)
	d.photos(p)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		obs.Logger.Error("proposal_pdf_output_failed", "number", p.Number, "error", err)
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *doc) font(style string, size float64) { d.pdf.SetFont(d.family, style, size) }

func (d *doc) header(p quote.Proposal) {
	pdf := d.pdf
	d.font("B", 14)
	pdf.CellFormat(contentW*0.65, 8, d.tr(p.Company.Name), "", 0, "L", false, 0, "")
	d.font("B", 12)
	pdf.CellFormat(contentW*0.35, 8, d.tr(fmt.Sprintf("PROPOSTA Nº %04d", p.Number)), "", 1, "R", false, 0, "")

	d.font("", 9)
	pdf.CellFormat(contentW*0.65, 5, d.tr(p.Company.Contact), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.35, 5, d.tr("Emitida em "+quote.FormatDate(p.IssuedAt)), "", 1, "R", false, 0, "")
	pdf.Ln(2)
	d.rule()
}

func (d *doc) parties(p quote.Proposal) {
	c := p.Client
	d.section("Cliente")
	d.field("Empresa", c.Company)
	d.field("Responsável", c.Name)
	d.field("CPF/CNPJ", c.Document)
	d.field("Endereço", c.Address)
	d.field("Telefone", c.Phone)
	d.field("E-mail", c.Email)

	e := p.Estimator
	d.section("Orçamentista")
	d.field("Nome", e.Name)
	d.field("Telefone", e.Phone)
	d.field("E-mail", e.Email)
}

func (d *doc) scope(p quote.Proposal) {
	if p.Reference != "" {
		d.section("Referência")
		d.paragraph(p.Reference)
	}
	if p.ServiceDescription != "" {
		d.section("Descrição dos serviços")
		d.paragraph(p.ServiceDescription)
	}
}

var cols = []struct {
	title string
	width float64
	align string
}{
	{"Descrição", 88, "L"},
	{"Qtd", 18, "R"},
	{"Un", 14, "C"},
	{"Valor unit.", 30, "R"},
	{"Total", 30, "R"},
}

func (d *doc) table(title string, lines []quote.ProposalLine) {
	if len(lines) == 0 {
		return
	}
	pdf := d.pdf
	d.section(title)

	d.font("B", 9)
	pdf.SetFillColor(235, 238, 242)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(c.width, 7, d.tr(c.title), "B", ln, c.align, true, 0, "")
	}

	for _, l := range lines {
		d.font("", 9)
		cells := []string{
			trim(l.Description, 52),
			formatQuantity(l.Quantity),
			l.Unit,
			quote.FormatCurrency(l.EffectiveUnitPrice),
			quote.FormatCurrency(l.Total),
		}
		for i, c := range cols {
			ln := 0
			if i == len(cols)-1 {
				ln = 1
			}
			pdf.CellFormat(c.width, 6, d.tr(cells[i]), "", ln, c.align, false, 0, "")
		}
		if l.Details != "" {
			d.font("", 8)
			pdf.SetTextColor(90, 90, 90)
			pdf.SetX(margin + 3)
			pdf.MultiCell(cols[0].width-3, 4, d.tr(l.Details), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		}
	}
	pdf.Ln(2)
}

func (d *doc) totals(p quote.Proposal) {
	t := p.Totals
	pdf := d.pdf
	pdf.Ln(2)
	d.rule()
	rows := []struct {
		label string
		value decimal.Decimal
	}{
		{"Total serviços", t.Services},
		{"Total materiais", t.Materials},
		{"Subtotal", t.SubTotal},
	}
	if !t.Discount.IsZero() {
		rows = append(rows, struct {
			label string
			value decimal.Decimal
		}{"Desconto", t.Discount.Neg()})
	}
	d.font("", 10)
	for _, r := range rows {
		pdf.CellFormat(contentW-40, 6, d.tr(r.label), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, d.tr(quote.FormatCurrency(r.value)), "", 1, "R", false, 0, "")
	}
	d.font("B", 12)
	pdf.CellFormat(contentW-40, 8, d.tr("TOTAL"), "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, d.tr(quote.FormatCurrency(t.Final)), "", 1, "R", false, 0, "")

	d.font("", 9)
	pdf.CellFormat(0, 6, d.tr(fmt.Sprintf("Validade da proposta: %d dias (até %s)", p.ValidityDays, p.ExpirationDate)), "", 1, "L", false, 0, "")
}

func (d *doc) terms(p quote.Proposal) {
	if p.Company.Conditions != "" {
		d.section("Condições")
		d.paragraph(p.Company.Conditions)
	}
	if p.Company.ServiceTerms != "" {
		d.section("Termos")
		d.paragraph(p.Company.ServiceTerms)
	}
}

func (d *doc) signatures(p quote.Proposal) {
	pdf := d.pdf
	pdf.Ln(16)
	y := pdf.GetY()
	half := contentW / 2
	pdf.Line(margin+5, y, margin+half-10, y)
	pdf.Line(margin+half+10, y, margin+contentW-5, y)
	pdf.Ln(2)
	d.font("", 9)
	client := p.Client.Company
	if client == "" {
		client = p.Client.Name
	}
	pdf.CellFormat(half, 5, d.tr(p.Company.Name), "", 0, "C", false, 0, "")
	pdf.CellFormat(half, 5, d.tr(client), "", 1, "C", false, 0, "")
}

func (d *doc) photos(p quote.Proposal) {
	if len(p.Photos) == 0 {
		return
	}
	pdf := d.pdf
	pdf.AddPage()
	d.section("Relatório fotográfico")

	_, pageH := pdf.GetPageSize()
	for i, ph := range p.Photos {
		imgType := imageType(ph.ContentType)
		if imgType == "" {
			obs.Logger.Warn("proposal_pdf_photo_skipped", "photo_id", ph.ID, "content_type", ph.ContentType)
			continue
		}
		name := fmt.Sprintf("photo-%d-%s", i, ph.ID)
		info := pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: imgType}, bytes.NewReader(ph.Data))
		if pdf.Err() {
			obs.Logger.Warn("proposal_pdf_photo_failed", "photo_id", ph.ID, "error", pdf.Error())
			pdf.ClearError()
			continue
		}
		w, h := fit(info.Width(), info.Height(), contentW, photoMaxH)
		if pdf.GetY()+h+12 > pageH-18 {
			pdf.AddPage()
		}
		x := margin + (contentW-w)/2
		pdf.ImageOptions(name, x, pdf.GetY(), w, h, false, gofpdf.ImageOptions{ImageType: imgType}, 0, "")
		pdf.SetY(pdf.GetY() + h + 2)
		if ph.Caption != "" {
			d.font("", 9)
			pdf.MultiCell(0, 5, d.tr(ph.Caption), "", "C", false)
		}
		pdf.Ln(4)
	}
}

func (d *doc) section(title string) {
	d.pdf.Ln(3)
	d.font("B", 11)
	d.pdf.CellFormat(0, 7, d.tr(title), "", 1, "L", false, 0, "")
}

func (d *doc) field(label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	d.font("B", 9)
	d.pdf.CellFormat(28, 5, d.tr(label+":"), "", 0, "L", false, 0, "")
	d.font("", 9)
	d.pdf.MultiCell(0, 5, d.tr(value), "", "L", false)
}

func (d *doc) paragraph(s string) {
	d.font("", 9)
	d.pdf.MultiCell(0, 4.5, d.tr(s), "", "L", false)
}

func (d *doc) rule() {
	y := d.pdf.GetY()
	d.pdf.SetDrawColor(180, 180, 180)
	d.pdf.Line(margin, y, margin+contentW, y)
	d.pdf.SetDrawColor(0, 0, 0)
	d.pdf.Ln(1)
}

func imageType(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return "JPG"
	case "image/png":
		return "PNG"
	case "image/gif":
		return "GIF"
	}
	return ""
}

// fit scales w×h down to the box, keeping the aspect ratio.
func fit(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scale := maxW / w
	if h*scale > maxH {
		scale = maxH / h
	}
	return w * scale, h * scale
}

func formatQuantity(q decimal.Decimal) string {
	return strings.ReplaceAll(q.String(), ".", ",")
}

func trim(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
