package database

import (
	"bodrum_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ListMenuItems relit tout le menu (petit volume, filtrage côté client).
func ListMenuItems() ([]models.MenuItem, error) {
	session, err := GetMenuSession()
	if err != nil {
		return nil, err
	}

	iter := session.Query(`SELECT item_id, name, description, price,
		category, image, available FROM menu_items`).Iter()

	var items []models.MenuItem
	var it models.MenuItem

	for iter.Scan(&it.ID, &it.Name, &it.Description, &it.Price,
		&it.Category, &it.Image, &it.Available) {
		items = append(items, it)
		it = models.MenuItem{}
	}

	if err := iter.Close(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetMenuItem relit un plat par identifiant.
func GetMenuItem(id string) (*models.MenuItem, error) {
	session, err := GetMenuSession()
	if err != nil {
		return nil, err
	}

	var it models.MenuItem
	err = session.Query(`SELECT item_id, name, description, price,
		category, image, available FROM menu_items WHERE item_id = ?`, id).
		Scan(&it.ID, &it.Name, &it.Description, &it.Price,
			&it.Category, &it.Image, &it.Available)
	if err == gocql.ErrNotFound {
		return nil, models.ErrMenuItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// UpsertMenuItem crée ou remplace un plat.
func UpsertMenuItem(it models.MenuItem) error {
	session, err := GetMenuSession()
	if err != nil {
		return err
	}

	return session.Query(`INSERT INTO menu_items
		(item_id, name, description, price, category, image, available)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		it.ID, it.Name, it.Description, it.Price, it.Category, it.Image,
		it.Available).Exec()
}
