package relational

import (
	"context"
	"strings"

	"pet-adoption-platform/internal/domain/adoptions"
	"pet-adoption-platform/internal/domain/appointments"
	"pet-adoption-platform/internal/domain/pets"
	"pet-adoption-platform/internal/domain/shop"
	"pet-adoption-platform/internal/domain/users"
	"pet-adoption-platform/internal/session"

	"gorm.io/gorm"
)

type userRepo struct{ db *gorm.DB }

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	if strings.TrimSpace(u.ID) == "" {
		return ErrIDRequired
	}
	return dbErr(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := emailTaken(tx, u.Email, ""); err != nil {
			return err
		}
		row := userToRow(u)
		return dbErr(tx.Create(&row).Error, ErrNotFound)
	}), ErrNotFound)
}

func (r *userRepo) Update(ctx context.Context, u users.User) error {
	return dbErr(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := emailTaken(tx, u.Email, u.ID); err != nil {
			return err
		}
		row := userToRow(u)
		res := tx.Model(&userRow{}).Where("id = ?", u.ID).Select("*").Updates(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return users.ErrNotFound
		}
		return nil
	}), users.ErrNotFound)
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return users.User{}, dbErr(err, users.ErrNotFound)
	}
	return row.toDomain(), nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		return users.User{}, dbErr(err, users.ErrNotFound)
	}
	return row.toDomain(), nil
}

func (r *userRepo) List(ctx context.Context) ([]users.User, error) {
	var rows []userRow
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, dbErr(err, ErrNotFound)
	}
	out := make([]users.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func emailTaken(tx *gorm.DB, email, exceptID string) error {
	var n int64
	q := tx.Model(&userRow{}).Where("email = ?", email)
	if exceptID != "" {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return users.ErrDuplicateEmail
	}
	return nil
}

type sessionRepo struct{ db *gorm.DB }

func (r *sessionRepo) Load(ctx context.Context, id string) (session.Session, error) {
	var row sessionRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return session.Session{}, dbErr(err, ErrNotFound)
	}
	return row.toDomain(), nil
}

// Save es upsert: la sesión se reescribe completa.
func (r *sessionRepo) Save(ctx context.Context, s session.Session) error {
	if s.ID == "" {
		return ErrIDRequired
	}
	row := sessionToRow(s)
	return dbErr(r.db.WithContext(ctx).Save(&row).Error, ErrNotFound)
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	return dbErr(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", id).Delete(&cartLineRow{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&sessionRow{}).Error
	}), ErrNotFound)
}

type petRepo struct{ db *gorm.DB }

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrIDRequired
	}
	row := petToRow(p)
	return dbErr(r.db.WithContext(ctx).Create(&row).Error, pets.ErrNotFound)
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	row := petToRow(p)
	res := r.db.WithContext(ctx).Model(&petRow{}).Where("id = ?", p.ID).Select("*").Updates(&row)
	if res.Error != nil {
		return dbErr(res.Error, pets.ErrNotFound)
	}
	if res.RowsAffected == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	var row petRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return pets.Pet{}, dbErr(err, pets.ErrNotFound)
	}
	return row.toDomain(), nil
}

func (r *petRepo) List(ctx context.Context) ([]pets.Pet, error) {
	return r.find(r.db.WithContext(ctx))
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	return r.find(r.db.WithContext(ctx).Where("owner_user_id = ?", ownerUserID))
}

// Delete borra las solicitudes y la mascota en la misma transacción.
func (r *petRepo) Delete(ctx context.Context, id string) (int, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("pet_id = ?", id).Delete(&requestRow{})
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected

		res = tx.Where("id = ?", id).Delete(&petRow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pets.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return 0, dbErr(err, pets.ErrNotFound)
	}
	return int(removed), nil
}

func (r *petRepo) find(q *gorm.DB) ([]pets.Pet, error) {
	var rows []petRow
	if err := q.Order("created_at ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, dbErr(err, pets.ErrNotFound)
	}
	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type adoptionRepo struct{ db *gorm.DB }

func (r *adoptionRepo) GetByID(ctx context.Context, id string) (adoptions.Request, error) {
	var row requestRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return adoptions.Request{}, dbErr(err, adoptions.ErrNotFound)
	}
	return row.toDomain(), nil
}

func (r *adoptionRepo) ListByPet(ctx context.Context, petID string) ([]adoptions.Request, error) {
	return r.find(r.db.WithContext(ctx).Where("pet_id = ?", petID))
}

func (r *adoptionRepo) ListByApplicant(ctx context.Context, userID string) ([]adoptions.Request, error) {
	return r.find(r.db.WithContext(ctx).Where("applicant_user_id = ?", userID))
}

// Commit escribe solicitud y status de la mascota en una transacción.
func (r *adoptionRepo) Commit(ctx context.Context, c adoptions.Commit) error {
	if c.Request.ID == "" {
		return ErrIDRequired
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pet petRow
		if err := tx.Where("id = ?", c.PetID).First(&pet).Error; err != nil {
			return dbErr(err, pets.ErrNotFound)
		}

		var n int64
		if err := tx.Model(&requestRow{}).Where("id = ?", c.Request.ID).Count(&n).Error; err != nil {
			return err
		}
		switch {
		case c.Insert && n > 0:
			return ErrExists
		case !c.Insert && n == 0:
			return adoptions.ErrNotFound
		}

		// Los UPDATE condicionados al status leído son el compare-and-set:
		// si otra transacción cambió algo antes, no afectan filas.
		row := requestToRow(c.Request)
		if c.Insert {
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		} else {
			q := tx.Model(&requestRow{}).Where("id = ?", row.ID)
			if c.FromStatus != "" {
				q = q.Where("status = ?", string(c.FromStatus))
			}
			res := q.Select("*").Updates(&row)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return adoptions.ErrStale
			}
		}

		q := tx.Model(&petRow{}).Where("id = ?", c.PetID)
		if c.FromPetStatus != "" {
			q = q.Where("status = ?", string(c.FromPetStatus))
		}
		res := q.Updates(map[string]any{
			"status":     string(c.PetStatus),
			"updated_at": c.At,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return adoptions.ErrStale
		}
		return nil
	})
	return dbErr(err, adoptions.ErrNotFound)
}

func (r *adoptionRepo) find(q *gorm.DB) ([]adoptions.Request, error) {
	var rows []requestRow
	if err := q.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, dbErr(err, adoptions.ErrNotFound)
	}
	out := make([]adoptions.Request, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type productRepo struct{ db *gorm.DB }

func (r *productRepo) Create(ctx context.Context, p shop.Product) error {
	if strings.TrimSpace(p.ID) == "" {
		return ErrIDRequired
	}
	row := productToRow(p)
	return dbErr(r.db.WithContext(ctx).Create(&row).Error, shop.ErrNotFound)
}

func (r *productRepo) GetByID(ctx context.Context, id string) (shop.Product, error) {
	var row productRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return shop.Product{}, dbErr(err, shop.ErrNotFound)
	}
	return row.toDomain(), nil
}

func (r *productRepo) List(ctx context.Context) ([]shop.Product, error) {
	var rows []productRow
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, dbErr(err, shop.ErrNotFound)
	}
	out := make([]shop.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type cartRepo struct{ db *gorm.DB }

func (r *cartRepo) Load(ctx context.Context, cartID string) ([]shop.Line, error) {
	var rows []cartLineRow
	if err := r.db.WithContext(ctx).Where("cart_id = ?", cartID).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, dbErr(err, ErrNotFound)
	}
	out := make([]shop.Line, 0, len(rows))
	for _, row := range rows {
		out = append(out, shop.Line{ProductID: row.ProductID, Quantity: row.Quantity})
	}
	return out, nil
}

// Save reemplaza todas las líneas del carrito.
func (r *cartRepo) Save(ctx context.Context, cartID string, lines []shop.Line) error {
	return dbErr(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&cartLineRow{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		rows := make([]cartLineRow, 0, len(lines))
		for i, l := range lines {
			rows = append(rows, cartLineRow{CartID: cartID, ProductID: l.ProductID, Quantity: l.Quantity, Position: i})
		}
		return tx.Create(&rows).Error
	}), ErrNotFound)
}

type appointmentRepo struct{ db *gorm.DB }

func (r *appointmentRepo) Create(ctx context.Context, a appointments.Appointment) error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrIDRequired
	}
	row := appointmentToRow(a)
	return dbErr(r.db.WithContext(ctx).Create(&row).Error, appointments.ErrNotFound)
}

func (r *appointmentRepo) Update(ctx context.Context, a appointments.Appointment) error {
	row := appointmentToRow(a)
	res := r.db.WithContext(ctx).Model(&appointmentRow{}).Where("id = ?", a.ID).Select("*").Updates(&row)
	if res.Error != nil {
		return dbErr(res.Error, appointments.ErrNotFound)
	}
	if res.RowsAffected == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	var row appointmentRow
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return appointments.Appointment{}, dbErr(err, appointments.ErrNotFound)
	}
	return row.toDomain(), nil
}

func (r *appointmentRepo) ListByUser(ctx context.Context, userID string) ([]appointments.Appointment, error) {
	var rows []appointmentRow
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&rows).Error; err != nil {
		return nil, dbErr(err, appointments.ErrNotFound)
	}
	out := make([]appointments.Appointment, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
