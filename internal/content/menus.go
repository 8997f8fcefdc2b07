package content

// Menu names the keyboard layout attached to a reply.
type Menu int

const (
	// MenuNone leaves whatever keyboard the user currently sees.
	MenuNone Menu = iota
	// MenuRemove hides the reply keyboard.
	MenuRemove
	MenuConsent
	MenuMain
	MenuPrograms
	MenuPay
	MenuPaid
	MenuAfterPay
)

var menuNames = map[Menu]string{
	MenuNone:     "none",
	MenuRemove:   "remove",
	MenuConsent:  "consent",
	MenuMain:     "main",
	MenuPrograms: "programs",
	MenuPay:      "pay",
	MenuPaid:     "paid",
	MenuAfterPay: "after_pay",
}

// String returns the logical name used in logs.
func (m Menu) String() string {
	if name, ok := menuNames[m]; ok {
		return name
	}
	return "unknown"
}

// Layout returns the button rows of a menu. MenuNone and MenuRemove have no rows.
func (c *Catalog) Layout(m Menu) [][]string {
	switch m {
	case MenuConsent:
		return [][]string{{BtnConsent}}
	case MenuMain:
		return [][]string{{BtnPrograms}, {BtnSubscribe}, {BtnRestart}}
	case MenuPrograms:
		rows := make([][]string, 0, len(c.programs)+1)
		for _, p := range c.programs {
			rows = append(rows, []string{p.Title})
		}
		return append(rows, []string{BtnBack})
	case MenuPay:
		return [][]string{{BtnGoToPayment}, {BtnToMenu}}
	case MenuPaid:
		return [][]string{{BtnPaid}, {BtnToMenu}}
	case MenuAfterPay:
		return [][]string{{BtnMaterials}, {BtnToMenu}}
	default:
		return nil
	}
}
