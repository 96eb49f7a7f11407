package quote

import (
	"errors"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

var ErrPhotoNotFound = errors.New("photo not found")

const DefaultValidityDays = 15

type Quote struct {
	Number    int       `json:"number"`
	CreatedAt time.Time `json:"created_at"`
	Client    Client    `json:"client"`
	Company   Company   `json:"company"`
	Estimator Estimator `json:"estimator"`
	Items     Items     `json:"items"`
	Photos    []Photo   `json:"photos"`

	Discount           decimal.Decimal `json:"discount"`
	ValidityDays       int             `json:"validity_days"`
	ServiceDescription string          `json:"service_description"`
	Reference          string          `json:"reference"`
}

type Client struct {
	Company  string `json:"company"`
	Name     string `json:"name"`
	Document string `json:"document"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

type Company struct {
	Name         string `json:"name"`
	Contact      string `json:"contact"`
	Conditions   string `json:"conditions"`
	ServiceTerms string `json:"service_terms"`
}

type Estimator struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Photo struct {
	ID          string `json:"id"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	Caption     string `json:"caption"`
}

func (q Quote) Totals() Totals { return Summarize(q.Items, q.Discount) }

func (q Quote) WithPhoto(p Photo) Quote {
	q.Photos = append(slices.Clone(q.Photos), p)
	return q
}

func (q Quote) WithCaption(id, caption string) (Quote, error) {
	i := slices.IndexFunc(q.Photos, func(p Photo) bool { return p.ID == id })
	if i < 0 {
		return q, ErrPhotoNotFound
	}
	photos := slices.Clone(q.Photos)
	photos[i].Caption = caption
	q.Photos = photos
	return q, nil
}

func (q Quote) WithoutPhoto(id string) (Quote, error) {
	i := slices.IndexFunc(q.Photos, func(p Photo) bool { return p.ID == id })
	if i < 0 {
		return q, ErrPhotoNotFound
	}
	q.Photos = slices.Delete(slices.Clone(q.Photos), i, i+1)
	return q, nil
}

// Proposal is everything a renderer needs, with all derived values filled in.
type Proposal struct {
	Number             int            `json:"number"`
	IssuedAt           time.Time      `json:"issued_at"`
	ExpiresAt          time.Time      `json:"expires_at"`
	ExpirationDate     string         `json:"expiration_date"`
	ValidityDays       int            `json:"validity_days"`
	Client             Client         `json:"client"`
	Company            Company        `json:"company"`
	Estimator          Estimator      `json:"estimator"`
	Reference          string         `json:"reference"`
	ServiceDescription string         `json:"service_description"`
	Lines              []ProposalLine `json:"lines"`
	Totals             Totals         `json:"totals"`
	Photos             []Photo        `json:"photos"`
}

type ProposalLine struct {
	LineItem
	EffectiveUnitPrice decimal.Decimal `json:"effective_unit_price"`
	Total              decimal.Decimal `json:"total"`
}

func (p Proposal) Services() []ProposalLine  { return p.linesOf(KindService) }
func (p Proposal) Materials() []ProposalLine { return p.linesOf(KindMaterial) }

func (p Proposal) linesOf(k Kind) []ProposalLine {
	var out []ProposalLine
	for _, l := range p.Lines {
		if l.Kind == k {
			out = append(out, l)
		}
	}
	return out
}

func BuildProposal(q Quote, now time.Time) Proposal {
	exp := ExpirationDate(now, q.ValidityDays)
	p := Proposal{
		Number:             q.Number,
		IssuedAt:           now,
		ExpiresAt:          exp,
		ExpirationDate:     FormatDate(exp),
		ValidityDays:       q.ValidityDays,
		Client:             q.Client,
		Company:            q.Company,
		Estimator:          q.Estimator,
		Reference:          q.Reference,
		ServiceDescription: q.ServiceDescription,
		Lines:              make([]ProposalLine, 0, len(q.Items)),
		Totals:             q.Totals(),
		Photos:             slices.Clone(q.Photos),
	}
	for _, it := range q.Items {
		p.Lines = append(p.Lines, ProposalLine{
			LineItem:           it,
			EffectiveUnitPrice: EffectiveUnitPrice(it),
			Total:              LineTotal(it),
		})
	}
	return p
}
