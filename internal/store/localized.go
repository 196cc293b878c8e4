// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "github.com/olegiv/portal-go/internal/locale"

// LocaleText exposes the button's translatable fields.
func (b FactoryButton) LocaleText() locale.Text {
	return locale.Text{
		Name:               b.Name,
		Description:        b.Description,
		Vietnamese:         locale.Variant{Name: b.NameVi, Description: b.DescriptionVi},
		TraditionalChinese: locale.Variant{Name: b.NameZhHant, Description: b.DescriptionZhHant},
		SimplifiedChinese:  locale.Variant{Name: b.NameZhHans, Description: b.DescriptionZhHans},
	}
}

// LocaleText exposes the section's translatable fields.
func (s PortalSection) LocaleText() locale.Text {
	return locale.Text{
		Name:               s.Name,
		Description:        s.Description,
		Vietnamese:         locale.Variant{Name: s.NameVi, Description: s.DescriptionVi},
		TraditionalChinese: locale.Variant{Name: s.NameZhHant, Description: s.DescriptionZhHant},
		SimplifiedChinese:  locale.Variant{Name: s.NameZhHans, Description: s.DescriptionZhHans},
	}
}

// LocaleText exposes the card's translatable fields.
func (c SystemCard) LocaleText() locale.Text {
	return locale.Text{
		Name:               c.Name,
		Description:        c.Description,
		Vietnamese:         locale.Variant{Name: c.NameVi, Description: c.DescriptionVi},
		TraditionalChinese: locale.Variant{Name: c.NameZhHant, Description: c.DescriptionZhHant},
		SimplifiedChinese:  locale.Variant{Name: c.NameZhHans, Description: c.DescriptionZhHans},
	}
}
