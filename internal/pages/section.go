// Package pages models site pages and their ordered content sections.
//
// A section is a tagged union: the JSON "type" field selects one of the
// known block variants, each with its own typed field set, so editors switch
// exhaustively over variants instead of probing for field presence. Unknown
// types decode into RawBody and survive a save round-trip untouched;
// dropping them would silently destroy content authored by a newer panel.
package pages

import (
	"encoding/json"
	"fmt"
)

// SectionType identifies a content block variant.
type SectionType string

// The known section variants.
const (
	SectionHero       SectionType = "hero"
	SectionSlider     SectionType = "slider"
	SectionBanner     SectionType = "banner"
	SectionText       SectionType = "text"
	SectionMarkdown   SectionType = "markdown"
	SectionHTML       SectionType = "html"
	SectionGallery    SectionType = "gallery"
	SectionVideo      SectionType = "video"
	SectionProducts   SectionType = "products"
	SectionCategories SectionType = "categories"
	SectionFAQ        SectionType = "faq"
	SectionReviews    SectionType = "reviews"
	SectionFeatures   SectionType = "features"
	SectionPricing    SectionType = "pricing"
	SectionTeam       SectionType = "team"
	SectionTimeline   SectionType = "timeline"
	SectionContacts   SectionType = "contacts"
	SectionMap        SectionType = "map"
	SectionForm       SectionType = "form"
	SectionCTA        SectionType = "cta"
	SectionSpacer     SectionType = "spacer"
)

// Section is one content block. Rendering order is array order on the
// owning page; Hidden blocks keep their slot but are not rendered publicly.
type Section struct {
	ID     int64
	Type   SectionType
	Hidden bool
	Body   Body
}

// Body is the type-specific field set of a section.
type Body interface{ sectionBody() }

// HeroBody is a large header block.
type HeroBody struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	ButtonText string `json:"buttonText,omitempty"`
	ButtonLink string `json:"buttonLink,omitempty"`
}

// Slide is one slide of a slider section.
type Slide struct {
	ImageURL string `json:"imageUrl"`
	Link     string `json:"link,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

// SliderBody is an image carousel.
type SliderBody struct {
	Slides []Slide `json:"slides"`
}

// BannerBody is a single clickable image strip.
type BannerBody struct {
	ImageURL string `json:"imageUrl"`
	Link     string `json:"link,omitempty"`
	Alt      string `json:"alt,omitempty"`
}

// TextBody is plain rich text.
type TextBody struct {
	Content string `json:"content"`
}

// MarkdownBody is markdown source rendered on the storefront.
type MarkdownBody struct {
	Content string `json:"content"`
}

// HTMLBody is raw embedded HTML.
type HTMLBody struct {
	Content string `json:"content"`
}

// GalleryBody is an image grid.
type GalleryBody struct {
	Images  []string `json:"images"`
	Columns int      `json:"columns,omitempty"`
}

// VideoBody embeds a video player.
type VideoBody struct {
	URL      string `json:"url"`
	Autoplay bool   `json:"autoplay,omitempty"`
}

// ProductsBody shows a product selection, either by category or by ids.
type ProductsBody struct {
	Title      string  `json:"title,omitempty"`
	CategoryID *int64  `json:"categoryId,omitempty"`
	ProductIDs []int64 `json:"productIds,omitempty"`
	Limit      int     `json:"limit,omitempty"`
}

// CategoriesBody shows category tiles.
type CategoriesBody struct {
	Title       string  `json:"title,omitempty"`
	CategoryIDs []int64 `json:"categoryIds"`
}

// FAQItem is one question/answer pair.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQBody is an accordion of questions.
type FAQBody struct {
	Items []FAQItem `json:"items"`
}

// ReviewsBody shows approved customer reviews.
type ReviewsBody struct {
	ProductID *int64 `json:"productId,omitempty"`
	Limit     int    `json:"limit,omitempty"`
}

// Feature is one icon/title/text tile.
type Feature struct {
	Icon  string `json:"icon,omitempty"`
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
}

// FeaturesBody is a feature tile grid.
type FeaturesBody struct {
	Items []Feature `json:"items"`
}

// PricingPlan is one column of a pricing table.
type PricingPlan struct {
	Name   string   `json:"name"`
	Price  string   `json:"price"`
	Period string   `json:"period,omitempty"`
	Items  []string `json:"items,omitempty"`
}

// PricingBody is a pricing table.
type PricingBody struct {
	Plans []PricingPlan `json:"plans"`
}

// TeamMember is one person card.
type TeamMember struct {
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

// TeamBody is a team card grid.
type TeamBody struct {
	Members []TeamMember `json:"members"`
}

// TimelineEntry is one dated milestone.
type TimelineEntry struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Text  string `json:"text,omitempty"`
}

// TimelineBody is a vertical milestone list.
type TimelineBody struct {
	Entries []TimelineEntry `json:"entries"`
}

// ContactsBody shows contact details.
type ContactsBody struct {
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// MapBody embeds a map.
type MapBody struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Zoom int     `json:"zoom,omitempty"`
}

// FormField is one input of a lead form.
type FormField struct {
	Name     string `json:"name"`
	Label    string `json:"label"`
	Kind     string `json:"kind"` // text, email, phone, textarea
	Required bool   `json:"required,omitempty"`
}

// FormBody is a lead capture form.
type FormBody struct {
	Title  string      `json:"title,omitempty"`
	Fields []FormField `json:"fields"`
}

// CTABody is a call-to-action strip.
type CTABody struct {
	Title      string `json:"title"`
	ButtonText string `json:"buttonText"`
	ButtonLink string `json:"buttonLink"`
}

// SpacerBody is vertical whitespace.
type SpacerBody struct {
	Height int `json:"height"`
}

// RawBody preserves a section of a type this client does not know.
type RawBody struct {
	Fields json.RawMessage
}

func (HeroBody) sectionBody()       {}
func (SliderBody) sectionBody()     {}
func (BannerBody) sectionBody()     {}
func (TextBody) sectionBody()       {}
func (MarkdownBody) sectionBody()   {}
func (HTMLBody) sectionBody()       {}
func (GalleryBody) sectionBody()    {}
func (VideoBody) sectionBody()      {}
func (ProductsBody) sectionBody()   {}
func (CategoriesBody) sectionBody() {}
func (FAQBody) sectionBody()        {}
func (ReviewsBody) sectionBody()    {}
func (FeaturesBody) sectionBody()   {}
func (PricingBody) sectionBody()    {}
func (TeamBody) sectionBody()       {}
func (TimelineBody) sectionBody()   {}
func (ContactsBody) sectionBody()   {}
func (MapBody) sectionBody()        {}
func (FormBody) sectionBody()       {}
func (CTABody) sectionBody()        {}
func (SpacerBody) sectionBody()     {}
func (RawBody) sectionBody()        {}

// envelope is the shared wire prefix of every section.
type envelope struct {
	ID     int64       `json:"id"`
	Type   SectionType `json:"type"`
	Hidden bool        `json:"hidden,omitempty"`
}

// emptyBody returns the zero value for a known type, or nil for unknown.
func emptyBody(t SectionType) Body {
	switch t {
	case SectionHero:
		return &HeroBody{}
	case SectionSlider:
		return &SliderBody{}
	case SectionBanner:
		return &BannerBody{}
	case SectionText:
		return &TextBody{}
	case SectionMarkdown:
		return &MarkdownBody{}
	case SectionHTML:
		return &HTMLBody{}
	case SectionGallery:
		return &GalleryBody{}
	case SectionVideo:
		return &VideoBody{}
	case SectionProducts:
		return &ProductsBody{}
	case SectionCategories:
		return &CategoriesBody{}
	case SectionFAQ:
		return &FAQBody{}
	case SectionReviews:
		return &ReviewsBody{}
	case SectionFeatures:
		return &FeaturesBody{}
	case SectionPricing:
		return &PricingBody{}
	case SectionTeam:
		return &TeamBody{}
	case SectionTimeline:
		return &TimelineBody{}
	case SectionContacts:
		return &ContactsBody{}
	case SectionMap:
		return &MapBody{}
	case SectionForm:
		return &FormBody{}
	case SectionCTA:
		return &CTABody{}
	case SectionSpacer:
		return &SpacerBody{}
	default:
		return nil
	}
}

// UnmarshalJSON decodes the envelope, then the type-specific fields.
func (s *Section) UnmarshalJSON(data []byte) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("pages: decode section envelope: %w", err)
	}
	s.ID = env.ID
	s.Type = env.Type
	s.Hidden = env.Hidden

	body := emptyBody(env.Type)
	if body == nil {
		// Unknown variant: keep the full object so it round-trips.
		s.Body = RawBody{Fields: append(json.RawMessage(nil), data...)}
		return nil
	}
	if err := json.Unmarshal(data, body); err != nil {
		return fmt.Errorf("pages: decode %s section: %w", env.Type, err)
	}
	s.Body = deref(body)
	return nil
}

// MarshalJSON flattens the envelope and the body into one object.
func (s Section) MarshalJSON() ([]byte, error) {
	if raw, ok := s.Body.(RawBody); ok {
		// Unknown variant: the stored fields go out verbatim, but the
		// envelope reflects local state so a hide/unhide still persists.
		fields := map[string]json.RawMessage{}
		if len(raw.Fields) > 0 {
			if err := json.Unmarshal(raw.Fields, &fields); err != nil {
				return nil, fmt.Errorf("pages: encode %s section: %w", s.Type, err)
			}
		}
		overlay, err := json.Marshal(struct {
			ID     int64 `json:"id"`
			Hidden bool  `json:"hidden"`
		}{s.ID, s.Hidden})
		if err != nil {
			return nil, err
		}
		var overlayFields map[string]json.RawMessage
		if err := json.Unmarshal(overlay, &overlayFields); err != nil {
			return nil, err
		}
		for k, v := range overlayFields {
			fields[k] = v
		}
		return json.Marshal(fields)
	}

	fields := map[string]json.RawMessage{}
	if s.Body != nil {
		bodyJSON, err := json.Marshal(s.Body)
		if err != nil {
			return nil, fmt.Errorf("pages: encode %s section: %w", s.Type, err)
		}
		if err := json.Unmarshal(bodyJSON, &fields); err != nil {
			return nil, err
		}
	}
	envJSON, err := json.Marshal(envelope{ID: s.ID, Type: s.Type, Hidden: s.Hidden})
	if err != nil {
		return nil, err
	}
	var envFields map[string]json.RawMessage
	if err := json.Unmarshal(envJSON, &envFields); err != nil {
		return nil, err
	}
	for k, v := range envFields {
		fields[k] = v
	}
	return json.Marshal(fields)
}

// deref unwraps the pointer emptyBody returned so Section.Body holds values.
func deref(b Body) Body {
	switch v := b.(type) {
	case *HeroBody:
		return *v
	case *SliderBody:
		return *v
	case *BannerBody:
		return *v
	case *TextBody:
		return *v
	case *MarkdownBody:
		return *v
	case *HTMLBody:
		return *v
	case *GalleryBody:
		return *v
	case *VideoBody:
		return *v
	case *ProductsBody:
		return *v
	case *CategoriesBody:
		return *v
	case *FAQBody:
		return *v
	case *ReviewsBody:
		return *v
	case *FeaturesBody:
		return *v
	case *PricingBody:
		return *v
	case *TeamBody:
		return *v
	case *TimelineBody:
		return *v
	case *ContactsBody:
		return *v
	case *MapBody:
		return *v
	case *FormBody:
		return *v
	case *CTABody:
		return *v
	case *SpacerBody:
		return *v
	default:
		return b
	}
}
