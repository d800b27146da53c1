package qti

import "encoding/xml"

// Typed QTI 1.2 (questestinterop) document tree. Every repeatable element
// is a slice so exporters that emit one element and exporters that emit
// many decode identically; the array-or-scalar ambiguity of generic XML
// object trees never reaches the mapping code.

type questestinterop struct {
	XMLName    xml.Name    `xml:"questestinterop"`
	Assessment *assessment `xml:"assessment"`
	Items      []item      `xml:"item"`
}

type assessment struct {
	Title    string    `xml:"title,attr"`
	Sections []section `xml:"section"`
}

type section struct {
	Items    []item    `xml:"item"`
	Sections []section `xml:"section"`
}

type item struct {
	Ident         string         `xml:"ident,attr"`
	Title         string         `xml:"title,attr"`
	Metadata      itemMetadata   `xml:"itemmetadata"`
	Presentation  presentation   `xml:"presentation"`
	ResProcessing *resProcessing `xml:"resprocessing"`
}

type itemMetadata struct {
	Fields []metadataField `xml:"qtimetadata>qtimetadatafield"`
}

type metadataField struct {
	Label string `xml:"fieldlabel"`
	Entry string `xml:"fieldentry"`
}

// Some exporters put material and response_lid directly under
// <presentation>, others nest them inside one or more <flow> wrappers.
type presentation struct {
	Materials   []material    `xml:"material"`
	ResponseLid []responseLid `xml:"response_lid"`
	Flows       []flow        `xml:"flow"`
}

type flow struct {
	Materials   []material    `xml:"material"`
	ResponseLid []responseLid `xml:"response_lid"`
	Flows       []flow        `xml:"flow"`
}

type material struct {
	MatTexts []matText `xml:"mattext"`
}

type matText struct {
	TextType string `xml:"texttype,attr"`
	Text     string `xml:",chardata"`
}

type responseLid struct {
	Ident        string         `xml:"ident,attr"`
	RenderChoice []renderChoice `xml:"render_choice"`
}

type renderChoice struct {
	Labels []responseLabel `xml:"response_label"`
}

type responseLabel struct {
	Ident    string   `xml:"ident,attr"`
	ID       string   `xml:"id,attr"`
	Material material `xml:"material"`
}

type resProcessing struct {
	Conditions []respCondition `xml:"respcondition"`
}

type respCondition struct {
	ConditionVar conditionVar `xml:"conditionvar"`
}

type conditionVar struct {
	VarEqual []varEqual `xml:"varequal"`
}

type varEqual struct {
	RespIdent string `xml:"respident,attr"`
	Ident     string `xml:"ident,attr"`
	Value     string `xml:",chardata"`
}

func (m material) text() string {
	for _, t := range m.MatTexts {
		if t.Text != "" {
			return t.Text
		}
	}
	return ""
}

func (p presentation) promptText() string {
	for _, m := range p.Materials {
		if t := m.text(); t != "" {
			return t
		}
	}
	return flowPrompt(p.Flows)
}

func flowPrompt(flows []flow) string {
	for _, f := range flows {
		for _, m := range f.Materials {
			if t := m.text(); t != "" {
				return t
			}
		}
		if t := flowPrompt(f.Flows); t != "" {
			return t
		}
	}
	return ""
}

// responseLabels returns all response choices of the item in document order.
func (p presentation) responseLabels() []responseLabel {
	var out []responseLabel
	for _, lid := range p.ResponseLid {
		for _, rc := range lid.RenderChoice {
			out = append(out, rc.Labels...)
		}
	}
	out = append(out, flowLabels(p.Flows)...)
	return out
}

func flowLabels(flows []flow) []responseLabel {
	var out []responseLabel
	for _, f := range flows {
		for _, lid := range f.ResponseLid {
			for _, rc := range lid.RenderChoice {
				out = append(out, rc.Labels...)
			}
		}
		out = append(out, flowLabels(f.Flows)...)
	}
	return out
}

// metadataAnswerIDs returns the comma-split original_answer_ids metadata
// entry, or nil when the field is absent. Canvas preserves the true answer
// identifiers only here; the ident attributes on its response labels are
// not reliable.
func (it item) metadataAnswerIDs() []string {
	for _, f := range it.Metadata.Fields {
		if f.Label == "original_answer_ids" && f.Entry != "" {
			return splitCSV(f.Entry)
		}
	}
	return nil
}
