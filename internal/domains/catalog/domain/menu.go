package domain

import "github.com/xtremepizzaria/storefront/internal/shared/money"

// Menu returns the static storefront menu in display order.
func Menu() []Item {
	return []Item{
		{ID: "pz-mussarela", Name: "Mussarela", Description: "Molho de tomate, mussarela e orégano.", BasePrice: money.MustParse("41.99"), ImageRef: "/images/pizzas/mussarela.jpg", Category: CategoryPizza, Tags: []string{"Tradicional"}},
		{ID: "pz-calabresa", Name: "Calabresa", Description: "Molho de tomate, mussarela, calabresa fatiada e orégano.", BasePrice: money.MustParse("41.99"), ImageRef: "/images/pizzas/calabresa.jpg", Category: CategoryPizza, Tags: []string{"Mais pedida"}},
		{ID: "pz-frango", Name: "Frango", Description: "Molho de tomate, mussarela, frango desfiado e orégano.", BasePrice: money.MustParse("41.99"), ImageRef: "/images/pizzas/frango.jpg", Category: CategoryPizza, Tags: nil},
		{ID: "pz-napolitana", Name: "Napolitana", Description: "Molho, mussarela, tomate, parmesão e orégano.", BasePrice: money.MustParse("41.99"), ImageRef: "/images/pizzas/napolitana.jpg", Category: CategoryPizza, Tags: []string{"Clássica"}},
		{ID: "pz-frango-catupiry", Name: "Frango com Catupiry", Description: "Molho, mussarela, frango, catupiry e orégano.", BasePrice: money.MustParse("45.99"), ImageRef: "/images/pizzas/frango_catupiry.jpg", Category: CategoryPizza, Tags: []string{"Especial", "Cremosa"}},
		{ID: "pz-portuguesa", Name: "Portuguesa", Description: "Molho, mussarela, presunto, ovo, cebola, pimentão e orégano.", BasePrice: money.MustParse("45.99"), ImageRef: "/images/pizzas/portuguesa.jpg", Category: CategoryPizza, Tags: []string{"Especial"}},
		{ID: "pz-bacon", Name: "Bacon", Description: "Molho, mussarela e bacon crocante.", BasePrice: money.MustParse("45.99"), ImageRef: "/images/pizzas/bacon.jpg", Category: CategoryPizza, Tags: []string{"Bacon"}},
		{ID: "pz-moda", Name: "Moda da Casa", Description: "Molho, mussarela, calabresa, bacon, pimentão e orégano.", BasePrice: money.MustParse("45.99"), ImageRef: "/images/pizzas/moda.jpg", Category: CategoryPizza, Tags: []string{"Especial"}},
		{ID: "pz-chocolate", Name: "Chocolate", Description: "Chocolate ao leite derretido e granulados.", BasePrice: money.MustParse("41.99"), ImageRef: "/images/pizzas/chocolate.jpg", Category: CategoryPizza, Tags: []string{"Doce"}},
		{ID: "pz-banana", Name: "Banana com Canela", Description: "Banana, açúcar e canela.", BasePrice: money.MustParse("41.99"), ImageRef: "/images/pizzas/banana.jpg", Category: CategoryPizza, Tags: []string{"Doce"}},
		{ID: "pz-morango-choc", Name: "Morango com Chocolate", Description: "Morangos frescos com chocolate derretido.", BasePrice: money.MustParse("41.99"), ImageRef: "/images/pizzas/morango_chocolate.jpg", Category: CategoryPizza, Tags: []string{"Doce"}},
		{ID: "pz-abacaxi", Name: "Abacaxi", Description: "Abacaxi caramelizado e leite condensado.", BasePrice: money.MustParse("41.99"), ImageRef: "/images/pizzas/abacaxi.jpg", Category: CategoryPizza, Tags: []string{"Doce"}},
		{ID: "bg-xburger", Name: "X-Burger", Description: "Pão, hambúrguer artesanal, queijo e maionese da casa.", BasePrice: money.MustParse("22.99"), ImageRef: "/images/burgers/xburger.jpg", Category: CategoryBurger, Tags: []string{"Smash"}},
		{ID: "bg-xsalada", Name: "X-Salada", Description: "Hambúrguer artesanal, queijo, alface, tomate e maionese da casa.", BasePrice: money.MustParse("24.99"), ImageRef: "/images/burgers/xsalada.jpg", Category: CategoryBurger, Tags: []string{"Fresco"}},
		{ID: "bg-xbacon", Name: "X-Bacon", Description: "Hambúrguer artesanal, queijo, bacon crocante e maionese da casa.", BasePrice: money.MustParse("26.99"), ImageRef: "/images/burgers/xbacon.jpg", Category: CategoryBurger, Tags: []string{"Bacon"}},
		{ID: "bg-xtudo", Name: "X-Tudo", Description: "Hambúrguer artesanal, queijo, presunto, bacon, ovo, salada e maionese da casa.", BasePrice: money.MustParse("29.99"), ImageRef: "/images/burgers/xtudo.jpg", Category: CategoryBurger, Tags: []string{"Completo"}},
		{ID: "dr-coca-2l", Name: "Coca-Cola 2L", Description: "Refrigerante 2 litros.", BasePrice: money.MustParse("12.99"), ImageRef: "/images/drinks/coca_2l.jpg", Category: CategoryDrink, Tags: []string{"2L"}},
		{ID: "dr-coca-1_5l", Name: "Coca-Cola 1,5L", Description: "Refrigerante 1,5 litros.", BasePrice: money.MustParse("10.99"), ImageRef: "/images/drinks/coca_1_5l.jpg", Category: CategoryDrink, Tags: []string{"1", "5L"}},
		{ID: "dr-fanta-2l", Name: "Fanta Laranja 2L", Description: "Refrigerante 2 litros.", BasePrice: money.MustParse("11.99"), ImageRef: "/images/drinks/fanta_2l.jpg", Category: CategoryDrink, Tags: []string{"2L"}},
		{ID: "dr-fanta-1_5l", Name: "Fanta Laranja 1,5L", Description: "Refrigerante 1,5 litros.", BasePrice: money.MustParse("9.99"), ImageRef: "/images/drinks/fanta_1_5l.jpg", Category: CategoryDrink, Tags: []string{"1", "5L"}},
		{ID: "dr-guarana-2l", Name: "Guaraná Antarctica 2L", Description: "Refrigerante 2 litros.", BasePrice: money.MustParse("11.99"), ImageRef: "/images/drinks/guarana_2l.jpg", Category: CategoryDrink, Tags: []string{"2L"}},
		{ID: "dr-guarana-1_5l", Name: "Guaraná Antarctica 1,5L", Description: "Refrigerante 1,5 litros.", BasePrice: money.MustParse("9.99"), ImageRef: "/images/drinks/guarana_1_5l.jpg", Category: CategoryDrink, Tags: []string{"1", "5L"}},
		{ID: "dr-heineken-500", Name: "Heineken Lata 500ml", Description: "Cerveja Pilsen 500ml.", BasePrice: money.MustParse("12.99"), ImageRef: "/images/drinks/heineken_500.jpg", Category: CategoryDrink, Tags: []string{"500ml"}},
		{ID: "dr-amstel-500", Name: "Amstel Lata 500ml", Description: "Cerveja Pilsen 500ml.", BasePrice: money.MustParse("10.99"), ImageRef: "/images/drinks/amstel_500.jpg", Category: CategoryDrink, Tags: []string{"500ml"}},
		{ID: "dr-brahma-500", Name: "Brahma Lata 500ml", Description: "Cerveja 500ml.", BasePrice: money.MustParse("9.99"), ImageRef: "/images/drinks/brahma_500.jpg", Category: CategoryDrink, Tags: []string{"500ml"}},
		{ID: "dr-antarctica-500", Name: "Antarctica Lata 500ml", Description: "Cerveja 500ml.", BasePrice: money.MustParse("9.99"), ImageRef: "/images/drinks/antarctica_500.jpg", Category: CategoryDrink, Tags: []string{"500ml"}},
	}
}
