package model

// Customer is customer model entity
type Customer struct {
	ID             int     `json:"id" bson:"_id" msgpack:"id"`
	FirstName      string  `json:"firstName" bson:"firstName" msgpack:"firstName"`
	MiddleName     *string `json:"middleName" bson:"middleName" msgpack:"middleName"`
	LastName       string  `json:"lastName" bson:"lastName" msgpack:"lastName"`
	SecondLastName *string `json:"secondLastName" bson:"secondLastName" msgpack:"secondLastName"`
	Email          string  `json:"email" bson:"email" msgpack:"email"`
	Address        string  `json:"address" bson:"address" msgpack:"address"`
	Phone          string  `json:"phone" bson:"phone" msgpack:"phone"`
	Country        int16   `json:"country" bson:"country" msgpack:"country"`
	Demonym        string  `json:"demonym" bson:"demonym" msgpack:"demonym"`
	Disabled       bool    `json:"disabled" bson:"disabled" msgpack:"disabled"`
}

// CustomerUpdate holds changes applied to existing customer.
// Nil fields are left untouched, country is mandatory because demonym is recomputed from it.
type CustomerUpdate struct {
	ID      int
	Email   *string
	Address *string
	Phone   *string
	Country int16
	Demonym string
}

// Apply returns copy of customer with update merged in
func (u *CustomerUpdate) Apply(c Customer) Customer {
	if u.Email != nil {
		c.Email = *u.Email
	}

	if u.Address != nil {
		c.Address = *u.Address
	}

	if u.Phone != nil {
		c.Phone = *u.Phone
	}

	c.Country = u.Country
	c.Demonym = u.Demonym
	return c
}
