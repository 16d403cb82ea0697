// Package stats recalcule les vues dérivées (fiche clients, statistiques,
// top produits) à partir du snapshot COMPLET de la collection des
// commandes. Aucun état incrémental : chaque snapshot reçu remplace tout,
// la projection précédente est jetée.
package stats

import (
	"sort"
	"strings"
	"time"

	"bodrum_back_end/internal/models"
)

// BuildCustomers groupe les commandes par téléphone. Le nom retenu est
// celui de la commande la plus récente (le snapshot arrive trié
// created_at décroissant, donc la première rencontrée). Tri final par
// total dépensé décroissant, stable sur les égalités.
func BuildCustomers(orders []models.Order) []models.Customer {
	index := make(map[string]int)
	var customers []models.Customer

	for _, o := range orders {
		i, seen := index[o.Phone]
		if !seen {
			index[o.Phone] = len(customers)
			customers = append(customers, models.Customer{
				Name:      o.Name,
				Phone:     o.Phone,
				LastOrder: o.CreatedAt,
			})
			i = len(customers) - 1
		}
		customers[i].Orders++
		customers[i].TotalSpent += o.Total
		if o.CreatedAt.After(customers[i].LastOrder) {
			customers[i].LastOrder = o.CreatedAt
		}
	}

	sort.SliceStable(customers, func(a, b int) bool {
		return customers[a].TotalSpent > customers[b].TotalSpent
	})

	return customers
}

// SearchCustomers filtre la fiche clients par nom ou téléphone.
func SearchCustomers(customers []models.Customer, query string) []models.Customer {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return customers
	}
	var out []models.Customer
	for _, c := range customers {
		if strings.Contains(strings.ToLower(c.Name), query) || strings.Contains(c.Phone, query) {
			out = append(out, c)
		}
	}
	return out
}

// PeriodStart traduit une période en borne basse :
// day = minuit local, week = maintenant − 7 jours, month = maintenant − 1
// mois calendaire. Période inconnue ⇒ day.
func PeriodStart(period string, now time.Time) time.Time {
	switch period {
	case "week":
		return now.AddDate(0, 0, -7)
	case "month":
		return now.AddDate(0, -1, 0)
	default:
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
}

// FilterAccepted garde les commandes acceptées dont created_at tombe dans
// [start, now]. Seules les commandes acceptées comptent dans les agrégats
// financiers : pending, pending_payment et rejected sont exclues quel que
// soit leur total.
func FilterAccepted(orders []models.Order, start, now time.Time) []models.Order {
	var out []models.Order
	for _, o := range orders {
		if o.Status != models.StatusAccepted {
			continue
		}
		if o.CreatedAt.Before(start) || o.CreatedAt.After(now) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Revenue fait la somme des totaux d'un lot de commandes.
func Revenue(orders []models.Order) int64 {
	var sum int64
	for _, o := range orders {
		sum += o.Total
	}
	return sum
}

type TrendPoint struct {
	Label   string `json:"label"`
	Revenue int64  `json:"revenue"`
}

// RevenueTrend agrège le chiffre d'affaires par jour de semaine, dans
// l'ordre de première rencontre du lot filtré.
func RevenueTrend(orders []models.Order) []TrendPoint {
	index := make(map[string]int)
	var points []TrendPoint

	for _, o := range orders {
		label := o.CreatedAt.Format("Mon")
		i, seen := index[label]
		if !seen {
			index[label] = len(points)
			points = append(points, TrendPoint{Label: label})
			i = len(points) - 1
		}
		points[i].Revenue += o.Total
	}

	return points
}

type ProductCount struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// TopProducts aplatit les items des commandes fournies, somme les
// quantités par nom de produit, trie décroissant et tronque à n. Les
// égalités gardent l'ordre de première rencontre.
func TopProducts(orders []models.Order, n int) []ProductCount {
	index := make(map[string]int)
	var counts []ProductCount

	for _, o := range orders {
		for _, it := range o.Items {
			i, seen := index[it.Name]
			if !seen {
				index[it.Name] = len(counts)
				counts = append(counts, ProductCount{Name: it.Name})
				i = len(counts) - 1
			}
			counts[i].Qty += it.Qty
		}
	}

	sort.SliceStable(counts, func(a, b int) bool {
		return counts[a].Qty > counts[b].Qty
	})

	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// Overview est la vue statistique servie au dashboard pour une période.
type Overview struct {
	Revenue     int64          `json:"revenue"`
	Orders      int            `json:"orders"`
	Trend       []TrendPoint   `json:"trend"`
	TopProducts []ProductCount `json:"top_products"`
}

// BuildOverview recalcule toute la vue statistique d'une période à partir
// du snapshot complet.
func BuildOverview(orders []models.Order, period string, now time.Time) Overview {
	filtered := FilterAccepted(orders, PeriodStart(period, now), now)
	return Overview{
		Revenue:     Revenue(filtered),
		Orders:      len(filtered),
		Trend:       RevenueTrend(filtered),
		TopProducts: TopProducts(filtered, 5),
	}
}
