package repository

import (
	"context"
	"fmt"

	"food-dataset-backend/internal/taxonomy"
)

// RegionCount is a submission count for one region.
type RegionCount struct {
	Region string `json:"region"`
	Count  int    `json:"count"`
}

// DishCount is a submission count for one dish type.
type DishCount struct {
	DishName taxonomy.DishType `json:"dishName"`
	Count    int               `json:"count"`
}

// Count returns the total number of submissions.
func (r *SubmissionRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count submissions: %w", err)
	}
	return total, nil
}

// CountByRegion returns submission counts grouped by region, largest first.
func (r *SubmissionRepository) CountByRegion(ctx context.Context) ([]RegionCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT region, COUNT(*)
		FROM submissions
		GROUP BY region
		ORDER BY COUNT(*) DESC, region
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions by region: %w", err)
	}
	defer rows.Close()

	var counts []RegionCount
	for rows.Next() {
		var c RegionCount
		if err := rows.Scan(&c.Region, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan region count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// CountByDish returns submission counts grouped by dish type, largest first.
func (r *SubmissionRepository) CountByDish(ctx context.Context) ([]DishCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT dish_name, COUNT(*)
		FROM submissions
		GROUP BY dish_name
		ORDER BY COUNT(*) DESC, dish_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions by dish: %w", err)
	}
	defer rows.Close()

	var counts []DishCount
	for rows.Next() {
		var c DishCount
		if err := rows.Scan(&c.DishName, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan dish count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// Count returns the total number of admin-portal accounts.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var total int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return total, nil
}
