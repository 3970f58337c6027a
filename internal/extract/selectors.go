package extract

// Selectors maps each fragment of a booking page to the CSS selector that
// locates it. Swapping selectors never touches parsing logic.
type Selectors struct {
	// Store locates the business name in the page header.
	Store string `mapstructure:"STORE"`
	// Staff locates the staff name anchor in the confirmation header.
	Staff string `mapstructure:"STAFF"`

	// InfoItem locates each row of the detail list; InfoTitle and InfoDesc are
	// resolved inside a row. The row whose title contains MenuLabel holds the menu.
	InfoItem  string `mapstructure:"INFO_ITEM"`
	InfoTitle string `mapstructure:"INFO_TITLE"`
	InfoDesc  string `mapstructure:"INFO_DESC"`
	MenuLabel string `mapstructure:"MENU_LABEL"`

	Booked  string `mapstructure:"BOOKED"`
	Address string `mapstructure:"ADDRESS"`
	// AddressNoise are button captions rendered inside the address box.
	AddressNoise []string `mapstructure:"ADDRESS_NOISE"`

	// Ready appears once the page has rendered enough to extract from.
	Ready string `mapstructure:"READY"`
}

// DefaultSelectors returns the selectors for booking.naver.com detail pages.
func DefaultSelectors() Selectors {
	return Selectors{
		Store:        ".BizItemHeader__title__vN3fX .BizItemHeader__text__1Ouye",
		Staff:        ".confirm_item_top h4.tit .anchor",
		InfoItem:     ".detail_info .info_lst .info_item",
		InfoTitle:    ".item_tit",
		InfoDesc:     ".item_desc",
		MenuLabel:    "메뉴",
		Booked:       ".detail_info .booked_date",
		Address:      ".address_text",
		AddressNoise: []string{"지번", "복사"},
		Ready:        ".confirm_item_top",
	}
}

// WithDefaults fills empty selectors from DefaultSelectors.
func (s Selectors) WithDefaults() Selectors {
	d := DefaultSelectors()
	if s.Store == "" {
		s.Store = d.Store
	}
	if s.Staff == "" {
		s.Staff = d.Staff
	}
	if s.InfoItem == "" {
		s.InfoItem = d.InfoItem
	}
	if s.InfoTitle == "" {
		s.InfoTitle = d.InfoTitle
	}
	if s.InfoDesc == "" {
		s.InfoDesc = d.InfoDesc
	}
	if s.MenuLabel == "" {
		s.MenuLabel = d.MenuLabel
	}
	if s.Booked == "" {
		s.Booked = d.Booked
	}
	if s.Address == "" {
		s.Address = d.Address
	}
	if s.AddressNoise == nil {
		s.AddressNoise = d.AddressNoise
	}
	if s.Ready == "" {
		s.Ready = d.Ready
	}
	return s
}
