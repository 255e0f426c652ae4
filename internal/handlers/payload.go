package handlers

import "github.com/umalmyha/customer-registry/internal/model"

type credentials struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,min=4,max=24"`
}

type newUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type accessToken struct {
	Token     string `json:"accessToken"`
	ExpiresAt int64  `json:"expiresAt"`
}

type newCustomer struct {
	FirstName      string  `json:"firstName" validate:"required,max=50"`
	MiddleName     *string `json:"middleName" validate:"omitempty,max=50"`
	LastName       string  `json:"lastName" validate:"required,max=50"`
	SecondLastName *string `json:"secondLastName" validate:"omitempty,max=50"`
	Email          string  `json:"email" validate:"required,email,max=100"`
	Address        string  `json:"address" validate:"required,max=200"`
	Phone          string  `json:"phone" validate:"required,min=10,max=15,phoneprefix=Country"`
	Country        int16   `json:"country" validate:"required,country"`
}

func (nc *newCustomer) toModel() *model.Customer {
	return &model.Customer{
		FirstName:      nc.FirstName,
		MiddleName:     nc.MiddleName,
		LastName:       nc.LastName,
		SecondLastName: nc.SecondLastName,
		Email:          nc.Email,
		Address:        nc.Address,
		Phone:          nc.Phone,
		Country:        nc.Country,
	}
}

// customerChanges is update payload, omitted contacts stay untouched
type customerChanges struct {
	Email   *string `json:"email" validate:"omitempty,min=1,email,max=100"`
	Address *string `json:"address" validate:"omitempty,min=1,max=200"`
	Phone   *string `json:"phone" validate:"omitempty,min=10,max=15,phoneprefix=Country"`
	Country int16   `json:"country" validate:"required,country"`
}

func (cc *customerChanges) toModel(id int) *model.CustomerUpdate {
	return &model.CustomerUpdate{
		ID:      id,
		Email:   cc.Email,
		Address: cc.Address,
		Phone:   cc.Phone,
		Country: cc.Country,
	}
}

// keptPhone returns stored phone to check against new country, nil when nothing to check
func (cc *customerChanges) keptPhone(existing *model.Customer) *storedPhone {
	if cc.Phone != nil || cc.Country == existing.Country {
		return nil
	}
	return &storedPhone{Phone: existing.Phone, Country: cc.Country}
}

type storedPhone struct {
	Phone   string `json:"phone" validate:"phoneprefix=Country"`
	Country int16  `json:"country"`
}

type identifiedCustomerChanges struct {
	ID int `json:"id" validate:"required,gt=0"`
	customerChanges
}
