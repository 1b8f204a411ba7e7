package main

import "bookly/internal/book"

func sampleBooks() []book.CreateInput {
	return []book.CreateInput{
		newSample("Think Python", "Allen B. Downey", "O'Reilly Media", "2021-02-02", 1200, "English"),
		newSample("Django By Example", "Antonio Mele", "Packt Publishing Ltd", "2022-01-19", 1023, "English"),
		newSample("The web socket handbook", "Alex Diaconu", "Xinyu Wang", "2021-01-01", 3677, "English"),
		newSample("Head first Javascript", "Hellen Smith", "Oreilly Media", "2021-01-01", 540, "English"),
		newSample("Algorithms and Data Structures In Python", "Kent Lee", "Springer, Inc", "2021-01-01", 9282, "English"),
		newSample("Head First HTML5 Programming", "Eric T Freeman", "O'Reilly Media", "2011-01-21", 3006, "English"),
	}
}

func newSample(title, author, publisher, publishedDate string, pages int, language string) book.CreateInput {
	return book.CreateInput{
		Title:         &title,
		Author:        &author,
		Publisher:     &publisher,
		PublishedDate: &publishedDate,
		PageCount:     &pages,
		Language:      &language,
	}
}
