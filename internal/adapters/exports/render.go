package exports

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"plancore/pkg/domain"
)

// Render serializes one artifact format for a plan and its evaluation.
func Render(format Format, plan domain.Plan, ev domain.Evaluation, ref domain.ReferenceData) ([]byte, error) {
	switch format {
	case FormatJSON:
		return renderJSON(plan, ev)
	case FormatSVG:
		return renderSVG(plan, ref.Jurisdiction(plan.JurisdictionKey)), nil
	case FormatCSV:
		return renderCSV(ev)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// exportDocument is the JSON artifact schema: the plan document, the full
// result set, and the derived summary.
type exportDocument struct {
	Plan    domain.Plan               `json:"plan"`
	Status  domain.Status             `json:"status"`
	Results []domain.ConstraintResult `json:"results"`
	Summary domain.Summary            `json:"summary"`
}

func renderJSON(plan domain.Plan, ev domain.Evaluation) ([]byte, error) {
	doc := exportDocument{
		Plan:    plan,
		Status:  ev.Status,
		Results: ev.Results,
		Summary: ev.Summary,
	}
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export document: %w", err)
	}
	return payload, nil
}

func renderCSV(ev domain.Evaluation) ([]byte, error) {
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write([]string{"layer", "id", "status", "name", "message", "witness"}); err != nil {
		return nil, err
	}
	for _, r := range ev.Results {
		row := []string{strconv.Itoa(r.Layer), r.ID, string(r.Status), r.Name, r.Message, r.Witness}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// svgCaptionHeight reserves vertical space above the lot for the title.
const svgCaptionHeight = 8

// renderSVG draws the plan as a standalone vector document in lot
// coordinates: title caption, lot rectangle, dashed setback rectangle, and
// one shape plus two labels (name, dimensions) per room.
func renderSVG(plan domain.Plan, j domain.Jurisdiction) []byte {
	var b strings.Builder
	width := plan.LotWidth
	depth := plan.LotDepth
	if width <= 0 {
		width = 1
	}
	if depth <= 0 {
		depth = 1
	}

	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="-2 %g %g %g" font-family="sans-serif">`,
		-2.0-svgCaptionHeight, width+4, depth+4+svgCaptionHeight)
	b.WriteString("\n")

	title := plan.Name
	if title == "" {
		title = "Untitled plan"
	}
	caption := fmt.Sprintf("%s - %s lot %s x %s", title, j.Name, feet(plan.LotWidth), feet(plan.LotDepth))
	fmt.Fprintf(&b, `<text x="0" y="-4" font-size="4" fill="#111">%s</text>`+"\n", escapeXML(caption))

	fmt.Fprintf(&b, `<rect x="0" y="0" width="%g" height="%g" fill="none" stroke="#333" stroke-width="0.5"/>`+"\n",
		plan.LotWidth, plan.LotDepth)

	if buildable := domain.BuildableRect(plan, j); buildable.Width > 0 && buildable.Height > 0 {
		fmt.Fprintf(&b,
			`<rect x="%g" y="%g" width="%g" height="%g" fill="none" stroke="#c60" stroke-width="0.3" stroke-dasharray="2 1"/>`+"\n",
			buildable.X, buildable.Y, buildable.Width, buildable.Height)
	}

	for _, room := range plan.Rooms {
		fmt.Fprintf(&b,
			`<rect x="%g" y="%g" width="%g" height="%g" fill="#e8eef7" stroke="#369" stroke-width="0.3"/>`+"\n",
			room.X, room.Y, room.Width, room.Height)
		name := room.Label
		if name == "" {
			name = room.Category
		}
		cx := room.X + room.Width/2
		cy := room.Y + room.Height/2
		fmt.Fprintf(&b, `<text x="%g" y="%g" font-size="2" text-anchor="middle" fill="#123">%s</text>`+"\n",
			cx, cy-0.6, escapeXML(name))
		fmt.Fprintf(&b, `<text x="%g" y="%g" font-size="1.6" text-anchor="middle" fill="#345">%s x %s</text>`+"\n",
			cx, cy+1.8, feet(room.Width), feet(room.Height))
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

func feet(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + " ft"
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escapeXML(s string) string { return xmlEscaper.Replace(s) }
