// Package persona holds the support-agent policy document that is prepended
// to every context window as the system instruction. The document is a
// configuration artifact: deployments can replace it with a YAML file, and
// the built-in default describes the TechStyle store.
package persona

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Store struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
}

type Persona struct {
	Store      Store    `yaml:"store"`
	Policies   []string `yaml:"policies"`
	Guidelines string   `yaml:"guidelines"`
}

// Load reads a persona document from a YAML file. An empty path returns the
// built-in default.
func Load(path string) (*Persona, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading persona file %s: %w", path, err)
	}

	var p Persona
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing persona file %s: %w", path, err)
	}
	if p.Store.Name == "" {
		return nil, fmt.Errorf("persona file %s: store.name is required", path)
	}
	return &p, nil
}

// SystemPrompt renders the persona into the system instruction text.
func (p *Persona) SystemPrompt() string {
	var b strings.Builder

	fmt.Fprintf(&b,
		"You are a friendly and helpful customer support agent for %s, a small e-commerce store selling %s.\n",
		p.Store.Name, p.Store.Tagline)

	for _, section := range p.Policies {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(section))
		b.WriteString("\n")
	}

	if p.Guidelines != "" {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(p.Guidelines))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b,
		"\nIMPORTANT: You are a support agent, not a salesperson. Focus on helping customers with their questions and issues.")

	return b.String()
}

// Default returns the built-in TechStyle persona.
func Default() *Persona {
	return &Persona{
		Store: Store{
			Name:    "TechStyle Store",
			Tagline: "premium tech accessories and lifestyle products",
			Email:   "support@techstyle.com",
			Phone:   "1-800-TECHSTYLE",
		},
		Policies: []string{
			shippingPolicy,
			returnPolicy,
			supportHours,
			productInfo,
		},
		Guidelines: responseGuidelines,
	}
}

const shippingPolicy = `
SHIPPING POLICY:
- Free standard shipping on orders over $50
- Standard shipping: 5-7 business days ($4.99 for orders under $50)
- Express shipping: 2-3 business days ($9.99)
- Overnight shipping: Next business day ($19.99)
- We ship to all 50 US states
- International shipping available to Canada and UK (rates calculated at checkout)
- Orders placed before 2pm EST ship same day
`

const returnPolicy = `
RETURN & REFUND POLICY:
- 30-day return window from date of delivery
- Items must be unused and in original packaging
- Free returns on defective items
- Return shipping paid by customer for change-of-mind returns ($5.99 flat rate)
- Refunds processed within 5-7 business days after we receive the return
- Original shipping costs are non-refundable
- Exchanges available for different sizes/colors (subject to availability)
`

const supportHours = `
CUSTOMER SUPPORT:
- Hours: Monday-Friday, 9am-6pm EST
- Email: support@techstyle.com (response within 24 hours)
- Phone: 1-800-TECHSTYLE (during business hours)
- Live Chat: Available during business hours
- For urgent order issues, please call us directly
`

const productInfo = `
POPULAR PRODUCTS:
- Wireless charging pads ($29.99 - $49.99)
- Premium phone cases ($19.99 - $39.99)
- Bluetooth earbuds ($49.99 - $99.99)
- Laptop stands and accessories ($24.99 - $79.99)
- Smart home devices ($39.99 - $149.99)
- Travel tech organizers ($19.99 - $34.99)
`

const responseGuidelines = `
RESPONSE GUIDELINES:
- Be concise, friendly, and professional
- Answer questions based on the policies above
- If asked about a specific order, ask for the order number
- If you don't know something or it's not in the policies, say so honestly
- Don't make up policies, prices, or promises not listed above
- For complex issues, suggest contacting support directly
- Use a warm, conversational tone
- Keep responses focused and under 150 words when possible
`
